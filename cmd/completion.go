package cmd

import (
	"flag"

	"github.com/etnz/recon/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the rcs command line, built from
// the flags of every subcommand.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	for cmd := range commands() {
		f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(f)
		sub := &complete.Command{Flags: flagPredictors(f)}
		switch cmd.Name() {
		case "check":
			sub.Args = predict.Files("*")
		case "show":
			sub.Args = predict.Files("*.csv")
		case "topic":
			topics, _ := docs.GetAllTopics()
			sub.Args = predict.Set(topics)
		}
		root.Sub[cmd.Name()] = sub
	}
	return root
}

func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	preds := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		preds[fl.Name] = flagPredictor(fl.Name)
	})
	return preds
}

func flagPredictor(name string) complete.Predictor {
	switch name {
	case "im", "cust", "ch", "o":
		return predict.Files("*")
	case "config":
		return predict.Files("*.yaml")
	case "im-delim", "cust-delim", "ch-delim", "d":
		return predict.Set{"comma", "pipe", "tab"}
	case "type":
		return predict.Set{"All Types", "Mismatch", "Orphan"}
	case "json", "demo", "q":
		return predict.Nothing
	}
	return predict.Something
}
