// Package main is the entry point for killfeed, a read-only killboard
// lookup API for EVE Online data.
package main

func main() {
	Execute()
}
