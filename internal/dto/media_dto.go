package dto

type UploadImageResponse struct {
	Success   bool   `json:"success"`
	Filename  string `json:"filename"`
	PublicURL string `json:"publicUrl"`
}

type DeleteImageRequest struct {
	Filename string `json:"filename" binding:"required"`
	Bucket   string `json:"bucket"`
}

type PendingAssetsResponse struct {
	Audio  []string `json:"audio"`
	Images []string `json:"images"`
}

type AssetImportResponse struct {
	Success  bool     `json:"success"`
	Audio    int      `json:"audio"`
	Images   int      `json:"images"`
	Failures []string `json:"failures,omitempty"`
}
