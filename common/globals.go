package common

// WabbitVersion is the current version of the Wabbit compiler.
const WabbitVersion = "0.1.0"

// WabbitProjectFileName is the name of the optional Wabbit project file.
const WabbitProjectFileName = "wabbit.toml"
