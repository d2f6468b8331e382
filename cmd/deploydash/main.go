package main

import "github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/internal/cmd"

func main() {
	cmd.Execute()
}
