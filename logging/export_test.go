package logging

// NewWithOutputs exposes output redirection to tests
var NewWithOutputs = newLogger
