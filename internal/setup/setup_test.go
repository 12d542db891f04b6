package setup

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-sod/insight/internal/artifact"
	artifactdb "github.com/go-sod/insight/internal/artifact/database"
	"github.com/go-sod/insight/internal/cache"
	"github.com/go-sod/insight/internal/carprice"
	"github.com/go-sod/insight/internal/database"
	"github.com/go-sod/insight/internal/feature"
	"github.com/go-sod/insight/internal/iris"
	"github.com/go-sod/insight/internal/records"
	"github.com/go-sod/insight/internal/sales"
	"github.com/go-sod/insight/internal/spam"
	"github.com/go-sod/insight/internal/unemployment"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	components   []string
	manifest     string
	db           database.Config
	cache        cache.Config
	carPrice     carprice.Config
	sales        sales.Config
	spam         spam.Config
	iris         iris.Config
	unemployment unemployment.Config
}

func (c *testConfig) Components() []string                     { return c.components }
func (c *testConfig) ManifestFile() string                     { return c.manifest }
func (c *testConfig) DatabaseConfig() *database.Config         { return &c.db }
func (c *testConfig) CacheConfig() *cache.Config               { return &c.cache }
func (c *testConfig) CarPriceConfig() *carprice.Config         { return &c.carPrice }
func (c *testConfig) SalesConfig() *sales.Config               { return &c.sales }
func (c *testConfig) SpamConfig() *spam.Config                 { return &c.spam }
func (c *testConfig) IrisConfig() *iris.Config                 { return &c.iris }
func (c *testConfig) UnemploymentConfig() *unemployment.Config { return &c.unemployment }

func writeArtifact(t *testing.T, path, name string, kind artifact.Kind, payload interface{}) artifact.Artifact {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	a, err := artifact.New(name, kind, "v1", b)
	require.NoError(t, err)
	if path != "" {
		require.NoError(t, artifact.WriteFile(path, a))
	}
	return a
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func irisCSV() string {
	var b strings.Builder
	b.WriteString("Id,SepalLengthCm,SepalWidthCm,PetalLengthCm,PetalWidthCm,Species\n")
	for i := 0; i < 10; i++ {
		d := float64(i) * 0.02
		fmt.Fprintf(&b, "%d,%.2f,3.40,1.40,0.20,Iris-setosa\n", 3*i+1, 5.0+d)
		fmt.Fprintf(&b, "%d,%.2f,2.80,4.30,1.30,Iris-versicolor\n", 3*i+2, 5.9+d)
		fmt.Fprintf(&b, "%d,%.2f,3.00,5.60,2.10,Iris-virginica\n", 3*i+3, 6.6+d)
	}
	return b.String()
}

const unemploymentCSV = `Region, Date, Frequency, Estimated Unemployment Rate (%), Estimated Employed, Estimated Labour Participation Rate (%),Area
Region A, 01-01-2020, Monthly,5.0,100,40.0,Rural
Region A, 01-02-2020, Monthly,7.0,100,42.0,Rural
Region B, 01-01-2020, Monthly,3.0,100,35.0,Urban
`

func fixture(t *testing.T) *testConfig {
	t.Helper()
	dir := t.TempDir()
	cfg := &testConfig{
		components: []string{"carprice", "sales", "spam", "iris", "unemployment"},
		cache:      cache.Config{Backend: cache.BackendMemory, TTL: time.Minute},
		carPrice:   carprice.Config{Artifact: filepath.Join(dir, "carprice.json")},
		sales:      sales.Config{Artifact: filepath.Join(dir, "sales.json")},
		spam: spam.Config{
			VectorizerArtifact: filepath.Join(dir, "vectorizer.json"),
			ClassifierArtifact: filepath.Join(dir, "spam_model.json"),
			SpamLabel:          "1",
		},
		iris: iris.Config{Dataset: filepath.Join(dir, "Iris.csv"), K: 5, TestSize: 0.2, Seed: 42, Distance: "EUCLIDEAN"},
		unemployment: unemployment.Config{
			Files:      []string{filepath.Join(dir, "first.csv"), filepath.Join(dir, "second.csv")},
			PreviewLen: 20,
		},
	}

	writeArtifact(t, cfg.carPrice.Artifact, "carprice", artifact.KindForestRegression, map[string]interface{}{
		"features":   feature.CarSchemaV1.Fields,
		"n_features": 8,
		"trees": []map[string]interface{}{{
			"children_left":  []int{1, -1, -1},
			"children_right": []int{2, -1, -1},
			"feature":        []int{0, -2, -2},
			"threshold":      []float64{2010, -2, -2},
			"value":          []float64{0, 2.5, 4.75},
		}},
	})
	writeArtifact(t, cfg.sales.Artifact, "sales", artifact.KindLinearRegression, map[string]interface{}{
		"features":  feature.SalesSchemaV1.Fields,
		"coef":      []float64{0.05, 0.1, 0},
		"intercept": 4.5,
	})
	writeArtifact(t, cfg.spam.VectorizerArtifact, "spam_vectorizer", artifact.KindTextVectorizer, map[string]interface{}{
		"vocabulary": map[string]int{"free": 0, "prize": 1, "lunch": 2, "meeting": 3},
	})
	writeArtifact(t, cfg.spam.ClassifierArtifact, "spam_classifier", artifact.KindTextClassifier, map[string]interface{}{
		"kind":            "multinomial_nb",
		"classes":         []int{0, 1},
		"class_log_prior": []float64{math.Log(0.5), math.Log(0.5)},
		"feature_log_prob": [][]float64{
			{math.Log(0.1), math.Log(0.1), math.Log(0.4), math.Log(0.4)},
			{math.Log(0.4), math.Log(0.4), math.Log(0.1), math.Log(0.1)},
		},
	})
	writeFile(t, cfg.iris.Dataset, irisCSV())
	writeFile(t, cfg.unemployment.Files[0], unemploymentCSV)
	writeFile(t, cfg.unemployment.Files[1], "Region,Date,Estimated Unemployment Rate (%),Estimated Labour Participation Rate (%)\n")
	return cfg
}

func TestSetupWith_AllComponents(t *testing.T) {
	ctx := context.Background()
	env, err := SetupWith(ctx, fixture(t))
	require.NoError(t, err)
	defer env.Close(ctx)

	est, err := env.CarPrice().Predict(feature.CarInput{
		Year: 2015, PresentPrice: 5.59, KmsDriven: 27000, Mileage: 18,
		FuelType: "Diesel", SellerType: "Dealer", Transmission: "Manual", Owner: "First",
	})
	require.NoError(t, err)
	assert.Equal(t, 4.75, est.Price)

	s, err := env.Sales().Predict(feature.SalesInput{TV: 100, Radio: 20, Newspaper: 50})
	require.NoError(t, err)
	assert.InDelta(t, 11.5, s.Sales, 1e-9)

	v, err := env.Spam().Check("FREE prize, claim your free prize")
	require.NoError(t, err)
	assert.True(t, v.Spam)

	assert.Equal(t, 1.0, env.Iris().Summary().Accuracy)

	summary, err := env.Unemployment().Summarize(ctx, records.Selection{Regions: []string{"Region A"}})
	require.NoError(t, err)
	assert.Equal(t, 6.0, summary.KPIs.AvgUnemploymentRate)
}

func TestSetupWith_MissingResourceIsFatal(t *testing.T) {
	cfg := fixture(t)
	require.NoError(t, os.Remove(cfg.spam.ClassifierArtifact))

	_, err := SetupWith(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, artifact.IsNotFound(err))
	assert.Contains(t, err.Error(), "spam_model.json")
}

func TestSetupWith_DisabledComponentsAreSkipped(t *testing.T) {
	cfg := fixture(t)
	cfg.components = []string{"sales"}
	require.NoError(t, os.Remove(cfg.iris.Dataset))

	env, err := SetupWith(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, env.Sales())
	assert.Nil(t, env.Iris())
	assert.Nil(t, env.CarPrice())
	assert.Nil(t, env.Cache())
}

func TestSetupWith_UnknownComponent(t *testing.T) {
	cfg := fixture(t)
	cfg.components = []string{"sales", "carpirce"}

	_, err := SetupWith(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carpirce")
}

func TestEnabledSet(t *testing.T) {
	cfg := fixture(t)
	cfg.components = []string{" Sales ", "", "IRIS"}

	got, err := enabledSet(cfg)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"sales": true, "iris": true}, got)
}

func TestSetupWith_ManifestFromStore(t *testing.T) {
	ctx := context.Background()
	cfg := fixture(t)
	dir := t.TempDir()

	cfg.db = database.Config{FileName: filepath.Join(dir, "insight.db"), OpenTimeout: time.Second}
	db, err := database.NewFromEnv(ctx, &cfg.db)
	require.NoError(t, err)
	stored := writeArtifact(t, "", "sales-2024", artifact.KindLinearRegression, map[string]interface{}{
		"coef":      []float64{0, 0, 1},
		"intercept": 0,
	})
	require.NoError(t, artifactdb.New(db).Store(ctx, stored))
	require.NoError(t, db.Close(ctx))

	cfg.manifest = filepath.Join(dir, "manifest.toml")
	writeFile(t, cfg.manifest, "[artifacts.sales]\nname = \"sales-2024\"\n")
	cfg.db.ReadOnly = true

	env, err := SetupWith(ctx, cfg)
	require.NoError(t, err)
	defer env.Close(ctx)

	s, err := env.Sales().Predict(feature.SalesInput{TV: 1, Radio: 2, Newspaper: 3})
	require.NoError(t, err)
	assert.Equal(t, 3.0, s.Sales)
}

func TestProvideRegressorFor_WrongKind(t *testing.T) {
	a := writeArtifact(t, "", "vec", artifact.KindTextVectorizer, map[string]interface{}{"vocabulary": map[string]int{"a": 0}})
	_, err := ProvideRegressorFor(a)
	assert.ErrorIs(t, err, artifact.ErrUnexpectedKind)
}
