package main

import "github.com/Razmik-Kutinava/password-entropy-lab/cmd/pwlab"

func main() { pwlab.Execute() }
