package commons

type uploadResponse struct {
	Upload struct {
		Result   string `json:"result"`
		Filename string `json:"filename"`
		Warnings struct {
			Duplicate []string `json:"duplicate"`
			Exists    string   `json:"exists"`
			// Set when the named file already holds these exact bytes.
			Nochange *struct {
				Timestamp string `json:"timestamp"`
			} `json:"nochange"`
		} `json:"warnings"`
	} `json:"upload"`
}

type imageInfoResponse struct {
	Query struct {
		Pages map[string]struct {
			Title     string  `json:"title"`
			Missing   *string `json:"missing"`
			ImageInfo []struct {
				URL string `json:"url"`
			} `json:"imageinfo"`
		} `json:"pages"`
	} `json:"query"`
}
