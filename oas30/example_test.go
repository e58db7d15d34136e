package oas30_test

import (
	"fmt"

	"github.com/erraggy/oascheck/oas30"
	"github.com/erraggy/oascheck/validator"
)

func ExampleParse() {
	spec, err := oas30.Parse([]byte(`openapi: "3.0.3"
info: {title: Pets, version: "1.0"}
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200": {description: ok}
`))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(spec.OpenAPI, spec.Info.Title, len(spec.Paths))
	// Output: 3.0.3 Pets 1
}

func ExampleSpec_Validate() {
	spec, err := oas30.Parse([]byte(`openapi: "3.0.3"
info: {title: Pets, version: "1.0"}
paths:
  /pets:
    get:
      tags: [pets]
      responses:
        "200": {description: ok}
components:
  schemas:
    Pet: {type: object}
`))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(spec.Validate())
	fmt.Println(spec.Validate(validator.WithFlag(validator.IgnoreMissingTags, validator.IgnoreUnusedSchemas)))
	// Output:
	// 2 errors found:
	// - #.paths[/pets].get.tags[0]: `pets` not found in spec
	// - #/components/schemas/Pet: unused
	//
	// <nil>
}
