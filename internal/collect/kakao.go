package collect

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/faithmap/faithmap/internal/classify"
	"github.com/faithmap/faithmap/internal/model"
	"github.com/faithmap/faithmap/internal/resilience"
	"github.com/faithmap/faithmap/pkg/kakao"
)

// defaultMaxPages caps keyword-search pagination per target.
const defaultMaxPages = 3

// KakaoSource searches the Kakao Local keyword endpoint.
type KakaoSource struct {
	client     kakao.Client
	classifier *classify.Classifier
	limiter    *Limiter
	maxPages   int
	wait       resilience.WaitConfig
}

// KakaoOption configures a KakaoSource.
type KakaoOption func(*KakaoSource)

// WithMaxPages overrides the pagination cap.
func WithMaxPages(n int) KakaoOption {
	return func(s *KakaoSource) {
		if n > 0 {
			s.maxPages = n
		}
	}
}

// WithKakaoWait overrides the 429 wait policy.
func WithKakaoWait(w resilience.WaitConfig) KakaoOption {
	return func(s *KakaoSource) {
		s.wait = w
	}
}

// NewKakaoSource creates a KakaoSource.
func NewKakaoSource(client kakao.Client, classifier *classify.Classifier, limiter *Limiter, opts ...KakaoOption) *KakaoSource {
	s := &KakaoSource{
		client:     client,
		classifier: classifier,
		limiter:    limiter,
		maxPages:   defaultMaxPages,
		wait:       resilience.RateLimitWait(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Name implements Source.
func (s *KakaoSource) Name() string { return "kakao" }

// Search pages through results until is_end or the page cap.
func (s *KakaoSource) Search(ctx context.Context, t Target) ([]model.Facility, error) {
	log := zap.L().With(zap.String("source", "kakao"), zap.String("query", t.Query()))

	wait := s.wait
	onRetry := resilience.RetryLogger("kakao", "keyword_search")
	wait.OnRetry = func(attempt int, err error) {
		s.limiter.OnRateLimit()
		onRetry(attempt, err)
	}

	var out []model.Facility
	for page := 1; page <= s.maxPages; page++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "kakao: rate limiter")
		}

		resp, err := resilience.DoVal(ctx, wait, func(ctx context.Context) (*kakao.KeywordResponse, error) {
			return s.client.KeywordSearch(ctx, t.Query(), page)
		})
		if err != nil {
			return nil, eris.Wrapf(err, "kakao: search %q page %d", t.Query(), page)
		}
		s.limiter.OnSuccess()

		for _, doc := range resp.Documents {
			f, err := s.toFacility(doc, t)
			if err != nil {
				log.Debug("skipping document", zap.String("id", doc.ID), zap.Error(err))
				continue
			}
			out = append(out, f)
		}

		if resp.Meta.IsEnd {
			break
		}
	}
	return out, nil
}

func (s *KakaoSource) toFacility(doc kakao.Document, t Target) (model.Facility, error) {
	lat, lng, err := doc.LatLng()
	if err != nil {
		return model.Facility{}, err
	}
	cult := s.classifier.CultType(doc.PlaceName, doc.CategoryName)
	return model.Facility{
		ID:           doc.ID,
		Name:         doc.PlaceName,
		Type:         t.Type,
		Address:      doc.AddressName,
		RoadAddress:  doc.RoadAddressName,
		Phone:        doc.Phone,
		Lat:          lat,
		Lng:          lng,
		KakaoURL:     doc.PlaceURL,
		Category:     doc.CategoryName,
		Denomination: s.classifier.Denomination(doc.CategoryName),
		IsCult:       cult != "",
		CultType:     cult,
		Region:       t.Region,
		Source:       "kakao",
	}, nil
}
