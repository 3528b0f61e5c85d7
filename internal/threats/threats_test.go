package threats_test

import (
	"context"
	"errors"
	"pen/internal/threats"
	"pen/pkg/domain"
	"testing"

	mockstorage "pen/pkg/storage/mock"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMap(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mockstorage.NewMockThreatStorage(ctrl)

	reports := []domain.ThreatReport{
		{ID: 1, City: "Douala", Kind: "phishing", Count: 23, Lat: 35, Left: 48},
		{ID: 2, City: "Yaoundé", Kind: "malware", Count: 18, Lat: 40, Left: 52},
		{ID: 4, City: "Garoua", Kind: "ddos", Count: 12, Lat: 25, Left: 55},
		{ID: 5, City: "Maroua", Kind: "phishing", Count: 9, Lat: 18, Left: 58},
		{ID: 3, City: "Bafoussam", Kind: "ransomware", Count: 7, Lat: 32, Left: 45},
	}
	store.EXPECT().ThreatReports(gomock.Any()).Return(reports, nil)

	got := threats.New(store).Map(context.Background())

	require.Equal(t, reports, got.Reports)
	require.Equal(t, 69, got.Total)
	require.Empty(t, got.Notice)
	require.Equal(t, []threats.Share{
		{Kind: "phishing", Label: "Phishing", Total: 32, Percentage: 46},
		{Kind: "malware", Label: "Malware", Total: 18, Percentage: 26},
		{Kind: "ransomware", Label: "Ransomware", Total: 7, Percentage: 10},
		{Kind: "ddos", Label: "DDoS", Total: 12, Percentage: 17},
	}, got.Breakdown)
}

func TestMap_ReadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mockstorage.NewMockThreatStorage(ctrl)
	store.EXPECT().ThreatReports(gomock.Any()).Return(nil, errors.New("connection refused"))

	got := threats.New(store).Map(context.Background())

	require.NotNil(t, got.Reports)
	require.Empty(t, got.Reports)
	require.Zero(t, got.Total)
	require.Equal(t, threats.UnavailableNotice, got.Notice)
	require.Len(t, got.Breakdown, 4)
	for _, s := range got.Breakdown {
		require.Zero(t, s.Percentage)
	}
}

func TestMap_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mockstorage.NewMockThreatStorage(ctrl)
	store.EXPECT().ThreatReports(gomock.Any()).Return(nil, nil)

	got := threats.New(store).Map(context.Background())

	require.NotNil(t, got.Reports)
	require.Empty(t, got.Notice)
	require.Zero(t, got.Total)
}
