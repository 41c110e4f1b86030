package cmd

import (
	"flag"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// filePredictors completes flags that name files.
var filePredictors = map[string]complete.Predictor{
	"portfolio-file": predict.Files("*.json"),
	"config":         predict.Files("*.yaml"),
}

// Completion returns the shell completion of the CLI: the global flags of top
// and every registered subcommand with its flags.
func Completion(top *flag.FlagSet) *complete.Command {
	c := &complete.Command{
		Flags: flags(top),
		Sub:   make(map[string]*complete.Command),
	}
	for _, g := range groups {
		for _, cmd := range g.commands {
			fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
			cmd.SetFlags(fs)
			c.Sub[cmd.Name()] = &complete.Command{Flags: flags(fs)}
		}
	}
	return c
}

func flags(fs *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := filePredictors[f.Name]; ok {
			m[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[f.Name] = predict.Nothing
			return
		}
		m[f.Name] = predict.Something
	})
	return m
}
