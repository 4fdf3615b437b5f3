package model

// Shared defaults used by the CLI and the renderers.
const (
	DefaultInputPath   = "data/sheeps.csv"
	DefaultSourceLabel = "seren"
	DefaultTitle       = "Sheep Counts in Turkey"
	DefaultYMin        = 0
	DefaultYMax        = 40_000_000
	DefaultPreviewRows = 3
	DefaultWebAddr     = "127.0.0.1:8050"
	DefaultChartWidth  = 72
	DefaultChartHeight = 16
)
