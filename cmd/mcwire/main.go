package main

import (
	"context"

	"gfx.cafe/util/go/gotel"

	mcwirecmd "gfx.cafe/gfx/mcwire/cmd"
)

func main() {
	fn, _ := gotel.InitTracing(context.Background(), gotel.WithServiceName("mcwire"))
	defer fn(context.Background())

	mcwirecmd.Main()
}
