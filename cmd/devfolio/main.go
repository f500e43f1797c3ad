// Command devfolio serves or builds a portfolio page from a GitHub user's
// public profile and repositories.
package main

import (
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container
)

func main() {
	Execute()
}
