package service

import (
	"math"
	"strconv"
	"testing"
	"time"

	"safe-radius/internal/model"

	"github.com/stretchr/testify/require"
)

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	c, err := NewCipher("search-test-key")
	require.NoError(t, err)
	return c
}

func encryptedPOI(t *testing.T, c *Cipher, id, name string, lat, lon float64, cat model.Category) model.POI {
	t.Helper()
	encName, err := c.Encrypt(name)
	require.NoError(t, err)
	encLat, err := c.Encrypt(strconv.FormatFloat(lat, 'f', -1, 64))
	require.NoError(t, err)
	encLon, err := c.Encrypt(strconv.FormatFloat(lon, 'f', -1, 64))
	require.NoError(t, err)
	return model.POI{
		ID:            id,
		EncryptedName: encName,
		EncryptedLat:  encLat,
		EncryptedLon:  encLon,
		Category:      cat,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestSearchPOIsInvalidRadius(t *testing.T) {
	c := newTestCipher(t)
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := SearchPOIs(c, Location{}, r, "", nil)
		require.ErrorIs(t, err, ErrInvalidRadius)
	}
}

func TestSearchPOIsAtRequesterLocation(t *testing.T) {
	c := newTestCipher(t)
	poi := encryptedPOI(t, c, "a", "Here", 0, 0, model.CategoryCafe)

	got, err := SearchPOIs(c, Location{Lat: 0, Lon: 0}, 5, "", []model.POI{poi})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Here", got[0].Name)
	require.Zero(t, got[0].DistanceKm)
}

func TestSearchPOIsRadiusFilter(t *testing.T) {
	c := newTestCipher(t)
	// one degree of longitude at the equator is about 111 km away
	far := encryptedPOI(t, c, "far", "Far", 0, 1, model.CategoryPark)

	got, err := SearchPOIs(c, Location{}, 1, "", []model.POI{far})
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = SearchPOIs(c, Location{}, 120, "", []model.POI{far})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestSearchPOIsRadiusBoundaryInclusive(t *testing.T) {
	c := newTestCipher(t)
	poi := encryptedPOI(t, c, "edge", "Edge", 0, 1, model.CategoryPark)

	exact := DistanceKm(0, 0, 0, 1)
	got, err := SearchPOIs(c, Location{}, exact, "", []model.POI{poi})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestSearchPOIsOrdering(t *testing.T) {
	c := newTestCipher(t)
	// 0.02° ≈ 2.2 km, 0.01° ≈ 1.1 km
	two := encryptedPOI(t, c, "two", "TwoKm", 0, 0.02, model.CategoryGym)
	one := encryptedPOI(t, c, "one", "OneKm", 0, 0.01, model.CategoryGym)

	got, err := SearchPOIs(c, Location{}, 5, "", []model.POI{two, one})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "OneKm", got[0].Name)
	require.Equal(t, "TwoKm", got[1].Name)
	require.LessOrEqual(t, got[0].DistanceKm, got[1].DistanceKm)
	for _, r := range got {
		require.LessOrEqual(t, r.DistanceKm, 5.0)
	}
}

func TestSearchPOIsCategoryFilter(t *testing.T) {
	c := newTestCipher(t)
	cafe := encryptedPOI(t, c, "a", "Cafe", 0, 0, model.CategoryCafe)
	gym := encryptedPOI(t, c, "b", "Gym", 0, 0, model.CategoryGym)

	got, err := SearchPOIs(c, Location{}, 5, model.CategoryCafe, []model.POI{cafe, gym})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, model.CategoryCafe, got[0].Category)
}

func TestSearchPOIsSkipsBadRecords(t *testing.T) {
	c := newTestCipher(t)
	other, err := NewCipher("different-key")
	require.NoError(t, err)

	good := encryptedPOI(t, c, "good", "Good", 0, 0, model.CategoryCafe)
	wrongKey := encryptedPOI(t, other, "bad", "Bad", 0, 0, model.CategoryCafe)

	garbled := good
	garbled.ID = "garbled"
	garbled.EncryptedLat = "not-a-ciphertext"

	emptyName := encryptedPOI(t, c, "empty", "", 0, 0, model.CategoryCafe)

	badCoord := encryptedPOI(t, c, "coord", "Coord", 0, 0, model.CategoryCafe)
	encBad, err := c.Encrypt("not-a-number")
	require.NoError(t, err)
	badCoord.EncryptedLon = encBad

	got, err := SearchPOIs(c, Location{}, 5, "", []model.POI{wrongKey, garbled, emptyName, badCoord, good})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "good", got[0].ID)
}
