package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/postplanner/internal/client/models"
	"github.com/dmitrijs2005/postplanner/internal/common"
	"github.com/dmitrijs2005/postplanner/internal/rpc"
	"github.com/google/uuid"
)

// GeneratePhasePath is appended to the generation service base URL.
const GeneratePhasePath = "/functions/v1/generate-phase"

const maxGenerationResponse = 4 << 20

type generateResponse struct {
	Items     []rpc.Postcard `json:"items"`
	Requested int            `json:"requested"`
	Failed    int            `json:"failed"`
	Note      string         `json:"note"`
	Error     string         `json:"error"`
	Details   string         `json:"details"`
}

// HTTPGenerator calls the generation endpoint over plain HTTP.
type HTTPGenerator struct {
	baseURL string
	http    *http.Client
}

// NewHTTPGenerator builds a generator for baseURL. Generation may take
// much longer than CRUD calls, so timeout is applied per request on its own.
func NewHTTPGenerator(baseURL string, timeout time.Duration) *HTTPGenerator {
	return &HTTPGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (g *HTTPGenerator) GeneratePhase(ctx context.Context, spec models.PhaseSpec) (*models.GenerateResult, error) {
	body, err := json.Marshal(spec)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+GeneratePhasePath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxGenerationResponse))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var out generateResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &GenerationError{StatusCode: resp.StatusCode, Message: serviceMessage(out, resp.StatusCode)}
	}
	if decodeErr != nil {
		return nil, &GenerationError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("malformed generation response: %v", decodeErr)}
	}
	if out.Error != "" {
		return nil, &GenerationError{StatusCode: resp.StatusCode, Message: out.Error}
	}

	items := make([]models.Postcard, 0, len(out.Items))
	for _, p := range out.Items {
		m, err := fromWire(p)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}

	res := &models.GenerateResult{
		Requested: out.Requested,
		Generated: len(items),
		Failed:    out.Failed,
		Note:      out.Note,
		Items:     items,
	}
	if res.Requested == 0 {
		res.Requested = spec.Expected()
	}
	if missing := res.Requested - res.Generated; res.Failed < missing {
		res.Failed = missing
	}
	return res, nil
}

func serviceMessage(out generateResponse, code int) string {
	switch {
	case out.Error != "":
		return out.Error
	case out.Details != "":
		return out.Details
	default:
		return httpStatusMessage(code)
	}
}
