package main

import "github.com/lisanmuaddib/twfriends/internal/cli"

func main() {
	cli.Execute()
}
