package main

import (
	"bytes"
	"flag"
	"io/ioutil"
	"os"

	plcp "github.com/Layonj3000/Problema-de-Localizacao-com-Cobertura-Parcial"
)

// formatter rewrites instance files in canonical form: comments dropped,
// records sorted and the header matching the records.
func main() {
	flag.Set("logtostderr", "true")
	flag.Parse()
	if flag.NArg() < 1 {
		plcp.Log(1, "No arguments passed!")
		os.Exit(2)
	}
	failed := false
	for _, fileName := range flag.Args() {
		if err := writeBackFile(fileName); err != nil {
			plcp.Log(1, "At %s: %s", fileName, err.Error())
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func writeBackFile(fileName string) error {
	inst, err := plcp.ReadInstance(fileName)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err = plcp.WriteInstance(&buf, inst); err != nil {
		return err
	}
	return ioutil.WriteFile(fileName, buf.Bytes(), 0644)
}
