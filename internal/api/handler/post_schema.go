package handler

// --- Response types for the JSON API ---

type authorResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type postLinks struct {
	Self string `json:"self"`
	Page string `json:"page"`
}

type postResponse struct {
	ID      int64          `json:"id"`
	Title   string         `json:"title"`
	Body    string         `json:"body"`
	Created string         `json:"created"`
	Author  authorResponse `json:"author"`
	Links   postLinks      `json:"_links"`
}

type commentResponse struct {
	ID      int64          `json:"id"`
	Body    string         `json:"body"`
	Created string         `json:"created"`
	Author  authorResponse `json:"author"`
}

type postDetailResponse struct {
	postResponse
	Comments []commentResponse `json:"comments"`
}

type listPostsResponse struct {
	Data []postResponse `json:"data"`
}
