package dto

type ExtractSkillsRequest struct {
	Text string `json:"text"`
}

type ExtractSkillsResponse struct {
	Skills []string `json:"skills"`
}

type ClearCacheResponse struct {
	Cleared int `json:"cleared"`
}
