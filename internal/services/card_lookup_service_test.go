package services

import (
	"context"
	"testing"

	"redeem-base/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	card *models.Card
	err  error
}

func (s *stubFetcher) FetchCard(ctx context.Context, cardID string) (*models.Card, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.card, nil
}

func newTestLookupService(t *testing.T, fetcher CardFetcher) *CardLookupService {
	t.Helper()
	logger := logrus.New()
	svc, err := NewCardLookupService(fetcher, NewChainClientPool("", logger), logger)
	require.NoError(t, err)
	return svc
}

func TestLookup_NativeToken(t *testing.T) {
	svc := newTestLookupService(t, &stubFetcher{card: &models.Card{
		CardID:       "12345",
		ChainID:      1,
		Active:       true,
		TokenAddress: models.NativeTokenAddress,
		TokenAmount:  "1000000000000000000",
	}})

	view, err := svc.Lookup(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, "Ethereum", view.ChainName)
	assert.Equal(t, "1 ETH", view.FormattedAmount)
}

func TestLookup_NativeTokenFractional(t *testing.T) {
	svc := newTestLookupService(t, &stubFetcher{card: &models.Card{
		CardID:       "12345",
		ChainID:      8453,
		Active:       true,
		TokenAddress: "",
		TokenAmount:  "1500000000000000000",
	}})

	view, err := svc.Lookup(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, "Base", view.ChainName)
	assert.Equal(t, "1.5 ETH", view.FormattedAmount)
}

func TestLookup_UnsupportedChain(t *testing.T) {
	svc := newTestLookupService(t, &stubFetcher{card: &models.Card{
		CardID:  "12345",
		ChainID: 999999,
		Active:  true,
	}})

	_, err := svc.Lookup(context.Background(), "12345")
	assert.ErrorIs(t, err, models.ErrUnsupportedChain)
}

func TestLookup_PropagatesNotFound(t *testing.T) {
	svc := newTestLookupService(t, &stubFetcher{err: models.ErrCardNotFound})

	_, err := svc.Lookup(context.Background(), "12345")
	assert.ErrorIs(t, err, models.ErrCardNotFound)
}

func TestLookup_Idempotent(t *testing.T) {
	svc := newTestLookupService(t, &stubFetcher{card: &models.Card{
		CardID:       "12345",
		ChainID:      1,
		Active:       true,
		TokenAddress: models.NativeTokenAddress,
		TokenAmount:  "1000000000000000000",
		Creator:      "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
	}})

	first, err := svc.Lookup(context.Background(), "12345")
	require.NoError(t, err)
	second, err := svc.Lookup(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
