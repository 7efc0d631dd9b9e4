package main

import "github.com/dbsmedya/gox3d/cmd/gox3d/cmd"

func main() {
	cmd.Execute()
}
