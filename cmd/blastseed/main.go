// cmd/blastseed/main.go
package main

import (
	"blastseed/internal/app"
	"blastseed/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
