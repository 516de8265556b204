// _example/example.go
package main

import (
	"fmt"

	"github.com/kenshaw/requirements"
)

const (
	text1 = "Lorem ipsum dolor.\nsit amet"
	text2 = "Lorem dolor sit amet.\nsit amet"
)

func main() {
	v := requirements.New(requirements.WithLegend(false))
	if err := v.RequireThat(text1, "text").IsEqualTo(text2); err != nil {
		fmt.Println(err)
	}
}
