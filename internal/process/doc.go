// Package process kills external renderers together with their children.
// Python diagrams spawns Graphviz and npx spawns node, so killing only the
// direct child would leave orphans behind after a timeout.
package process
