package request

// ValidMovesRequest is the request body for listing a minichess piece's moves.
// Row and Col are pointers so that zero is distinguishable from absent.
type ValidMovesRequest struct {
	Board [][]string `json:"board" validate:"required,len=5,dive,len=5,dive,max=1"`
	Row   *int       `json:"row" validate:"required,min=0,max=4"`
	Col   *int       `json:"col" validate:"required,min=0,max=4"`
}
