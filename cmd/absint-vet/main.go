// Command absint-vet runs the absint analyzer standalone or as a go vet tool:
//
//	go vet -vettool=$(which absint-vet) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/sirkon/absint"
)

func main() {
	singlechecker.Main(absint.Analyzer)
}
