// cmd/lcapy/main.go — command-line front end
//
// Parses an expression, optionally transforms it, and prints the requested
// presentation.
//
// Usage:
//   go run cmd/lcapy/main.go -domain laplace -form partfrac "5*(s^2 + 1)/(s^2 + 5*s + 4)"
//   go run cmd/lcapy/main.go -domain laplace -to time -causal "1/(s + 2)"
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	lcapy "github.com/HotPushUpGuy420/lcapy"
)

func main() {
	domain := flag.String("domain", "auto", "input domain: time, laplace, fourier, omega, phasor, const or auto")
	to := flag.String("to", "", "transform target domain")
	form := flag.String("form", "", "rational form: general, canonical, standard, zpk, timeconst, partfrac, partfrac_conj")
	causal := flag.Bool("causal", false, "assume the signal is causal when inverting")
	latex := flag.Bool("latex", false, "print LaTeX instead of plain text")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: lcapy [flags] <expression>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	params := map[string]interface{}{
		"expr":   flag.Arg(0),
		"domain": *domain,
	}
	tool := "parse"
	switch {
	case *to != "":
		tool = "transform"
		params["to"] = *to
		params["causal"] = *causal
	case *form != "":
		tool = "form"
		params["form"] = *form
	}

	resp := lcapy.HandleToolCall(lcapy.ToolRequest{Tool: tool, Params: params})
	if resp.Error != "" {
		log.Fatal(resp.Error)
	}
	if *latex {
		fmt.Println(resp.LaTeX)
		return
	}
	fmt.Println(resp.String)
}
