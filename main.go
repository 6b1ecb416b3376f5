package main

import "nathanbeddoewebdev/wanddns/cmd"

func main() {
	cmd.Execute()
}
