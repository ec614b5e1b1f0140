package calcgate_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aretw0/calcgate"
	"github.com/aretw0/calcgate/internal/logging"
	"github.com/aretw0/calcgate/pkg/adapters/exprlang"
)

// ExampleCalculator_Calculate evaluates in-process, without a calculator binary.
func ExampleCalculator_Calculate() {
	calc := calcgate.New(exprlang.New(), calcgate.WithLogger(logging.NewNop()))

	for _, expression := range []string{"2 * (3 + 4)", "7 / 2", "2 +"} {
		outcome, err := calc.Calculate(context.Background(), expression)
		if err != nil {
			log.Fatal(err)
		}
		data, _ := json.Marshal(outcome)
		fmt.Println(string(data))
	}
	// Output:
	// {"result":14}
	// {"result":3.5}
	// {"error":"Invalid expression"}
}
