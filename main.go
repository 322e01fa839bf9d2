package main

import "github.com/seo-optimizer/contentquality/cmd"

func main() {
	cmd.Execute()
}
