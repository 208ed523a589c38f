package product

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

// jsonResponse marshals v into an API Gateway proxy response.
func jsonResponse(status int, v interface{}) (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    jsonHeaders,
			Body:       `{"message": "Failed to format response"}`,
		}, nil
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    jsonHeaders,
		Body:       string(body),
	}, nil
}

// messageResponse wraps a human-readable message in the standard envelope.
func messageResponse(status int, msg string) (events.APIGatewayProxyResponse, error) {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    jsonHeaders,
		Body:       fmt.Sprintf(`{"message": %q}`, msg),
	}, nil
}
