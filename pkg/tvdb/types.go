package tvdb

// loginResponse is the TVDB login API response.
type loginResponse struct {
	Status string `json:"status"`
	Data   struct {
		Token string `json:"token"`
	} `json:"data"`
}

// searchResponse is the TVDB search API response. Only the series name
// is consumed.
type searchResponse struct {
	Status string `json:"status"`
	Data   []struct {
		Name string `json:"name"`
	} `json:"data"`
}
