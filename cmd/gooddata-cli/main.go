// gooddata-cli: read-only GoodData analytics from the terminal or as
// an MCP tool server.
//
// Usage:
//
//	gooddata-cli list workspaces     # Browse analytics resources
//	gooddata-cli insight data <id>   # Execute an insight
//	gooddata-cli serve               # Start MCP server (stdio transport)
package main

import "github.com/stackless-dev/gooddata-cli/internal/cli"

func main() {
	cli.Execute()
}
