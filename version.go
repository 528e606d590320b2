package mazerunner

// Version is the release version reported by the CLI and the MCP server.
var Version = "0.3.0"
