package walker_test

import (
	"fmt"

	"github.com/swagg-dev/swagg/parser"
	"github.com/swagg-dev/swagg/walker"
)

func ExampleRun() {
	doc, err := parser.Parse([]byte(`
openapi: 3.0.3
info: {title: Pet Store, version: 1.0.0}
paths:
  /pets:
    post:
      operationId: createPet
      responses: {"201": {description: created}}
    get:
      operationId: listPets
      responses: {"200": {description: ok}}
`))
	if err != nil {
		fmt.Println(err)
		return
	}

	var operationIDs []string
	hook := &walker.Funcs{
		OnOperationFn: func(_ *walker.Context, method, path string, op *parser.Operation) error {
			operationIDs = append(operationIDs, method+" "+op.OperationID)
			return nil
		},
	}
	if _, err := walker.Run(doc, []walker.Hook{hook}); err != nil {
		fmt.Println(err)
		return
	}

	for _, id := range operationIDs {
		fmt.Println(id)
	}
	// Output:
	// get listPets
	// post createPet
}
