// Package dag provides a directed graph of installation prerequisites.
//
// # Overview
//
// Every catalog item may declare hard prerequisites: other items that must be
// installed before it. This package holds those edges as a graph whose nodes
// are item identities and whose edges point from a dependent item to the
// prerequisite it requires.
//
// # Basic Usage
//
// Create a new graph with [New], add nodes with [DAG.AddNode], and edges with
// [DAG.AddEdge]. Nodes must have unique IDs, and edges can only connect
// existing nodes:
//
//	g := dag.New()
//	g.AddNode("rust")
//	g.AddNode("zellij")
//	g.AddEdge("zellij", "rust") // zellij requires rust
//
// Query prerequisites with [DAG.Children]. Use [DAG.Validate] to reject
// cyclic configurations before resolving selections against the graph.
//
// # Ordering
//
// Nodes keep their insertion order. [DAG.Nodes], [DAG.Children] and the
// path reported by [CycleError] are deterministic, which keeps menus, plans
// and error messages stable across runs.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. The catalog builds its graph
// once at startup and only reads from it afterwards.
package dag
