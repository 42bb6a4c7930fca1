package domain

// PipelineKPIs summarizes the tenant's open pipeline. Values are dollars.
type PipelineKPIs struct {
	PipelineValue    float64 `json:"pipeline_value"`
	WeightedPipeline float64 `json:"weighted_pipeline"`
	OpenCount        int     `json:"open_count"`
	WonCount         int     `json:"won_count"`
	LostCount        int     `json:"lost_count"`
	WinRate          float64 `json:"win_rate"`
}

type StageSummary struct {
	Stage string  `json:"stage"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}
