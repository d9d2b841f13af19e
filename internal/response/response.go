// Package response builds the {statusCode, body} payloads returned by the
// API Gateway facing and directly invoked handlers.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

// JSON encodes v as the response body. An unencodable v yields a 500.
func JSON(status int, v any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(v)
	if err != nil {
		return Message(http.StatusInternalServerError, "failed to encode response")
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    jsonHeaders,
		Body:       string(body),
	}
}

// Message returns msg as a JSON string body.
func Message(status int, msg string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(msg)

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    jsonHeaders,
		Body:       string(body),
	}
}
