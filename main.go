package main

import "yt2mp3/cmd"

func main() {
	cmd.Execute()
}
