package health

type Input struct{}

type Output struct {
	Body Response
}

// Response is the liveness payload. Reaching the handler at all is the
// check; the body carries no further state.
type Response struct {
	Status string `json:"status" example:"OK" doc:"Health status of the service"`
}
