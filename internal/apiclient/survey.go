package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/baomythoi/leefit/internal/survey"
)

// SurveySubmitter posts questionnaire answers to a fixed endpoint. Any 2xx
// answer counts as an acknowledgement; the body is ignored.
type SurveySubmitter struct {
	client   *Client
	endpoint string
}

func (c *Client) SurveySubmitter(endpoint string) *SurveySubmitter {
	if endpoint == "" {
		endpoint = c.baseURL + "/survey"
	}
	return &SurveySubmitter{client: c, endpoint: endpoint}
}

func (s *SurveySubmitter) Endpoint() string {
	return s.endpoint
}

func (s *SurveySubmitter) Submit(ctx context.Context, submission survey.Submission) error {
	payload, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	_, err = s.client.do(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload), "application/json")
	return err
}
