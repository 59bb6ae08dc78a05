package domain

import "encoding/json"

// CompileRequest is the input to a single solc invocation
type CompileRequest struct {
	Version       string
	Sources       map[string]string // source unit name -> content
	EVMVersion    string
	Optimizer     bool
	OptimizerRuns int
}

// CompileResult is the output of a solc invocation
type CompileResult struct {
	Version   string
	Raw       json.RawMessage
	Artifacts map[string]*Artifact // contract name -> artifact
	Warnings  []CompilerError
}
