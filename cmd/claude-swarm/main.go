// claude-swarm orchestrates swarms of Claude Code agents.
package main

func main() {
	Execute()
}
