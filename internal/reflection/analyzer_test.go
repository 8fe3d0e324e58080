package reflection_test

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/cdi/internal/reflection"
)

// Test types
type Database struct {
	ConnectionString string
}

type Logger interface {
	Log(msg string)
}

type ConsoleLogger struct {
	lines []string
}

func (c *ConsoleLogger) Log(msg string) { c.lines = append(c.lines, msg) }

type UserService struct {
	DB     *Database
	Logger Logger
}

// Test constructors
func NewDatabase(connStr string) *Database {
	return &Database{ConnectionString: connStr}
}

func NewUserService(db *Database, logger Logger) *UserService {
	return &UserService{DB: db, Logger: logger}
}

func NewUserServiceWithError(db *Database) (*UserService, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}
	return &UserService{DB: db}, nil
}

// In parameter object
type ServiceParams struct {
	reflection.In

	Database *Database
	Logger   Logger    `optional:"true"`
	Cache    *Database `name:"cache"`
	Replica  *Database `named:"replica" inject:"optional"`
	Ignored  string    `inject:"-"`
	internal string
}

func NewServiceWithParams(params ServiceParams) *UserService {
	return &UserService{
		DB:     params.Database,
		Logger: params.Logger,
	}
}

var databaseType = reflect.TypeOf((*Database)(nil))

func TestAnalyzer_SimpleConstructor(t *testing.T) {
	analyzer := reflection.New()

	info, err := analyzer.Analyze(NewDatabase)
	require.NoError(t, err, "Failed to analyze constructor")

	assert.True(t, info.IsFunc, "Expected IsFunc to be true")
	assert.False(t, info.IsParamObject, "Expected IsParamObject to be false")
	assert.False(t, info.HasErrorReturn, "Expected HasErrorReturn to be false")
	assert.Equal(t, databaseType, info.Result, "Expected *Database result type")

	require.Len(t, info.Parameters, 1, "Expected 1 parameter")
	assert.Equal(t, reflect.TypeOf(""), info.Parameters[0].Type, "Expected string parameter type")
	assert.Equal(t, 0, info.Parameters[0].Index)
	assert.Empty(t, info.Parameters[0].Name)
}

func TestAnalyzer_ConstructorWithMultipleParams(t *testing.T) {
	analyzer := reflection.New()

	info, err := analyzer.Analyze(NewUserService)
	require.NoError(t, err, "Failed to analyze constructor")

	require.Len(t, info.Parameters, 2, "Expected 2 parameters")
	assert.Equal(t, databaseType, info.Parameters[0].Type, "Expected first parameter to be *Database")
	assert.Equal(t, reflect.TypeOf((*Logger)(nil)).Elem(), info.Parameters[1].Type, "Expected second parameter to be Logger interface")
	assert.Equal(t, 1, info.Parameters[1].Index)
}

func TestAnalyzer_ConstructorWithError(t *testing.T) {
	analyzer := reflection.New()

	info, err := analyzer.Analyze(NewUserServiceWithError)
	require.NoError(t, err, "Failed to analyze constructor")

	assert.True(t, info.HasErrorReturn, "Expected HasErrorReturn to be true")
	assert.Equal(t, reflect.TypeOf((*UserService)(nil)), info.Result)
}

func TestAnalyzer_ParamObject(t *testing.T) {
	analyzer := reflection.New()

	info, err := analyzer.Analyze(NewServiceWithParams)
	require.NoError(t, err, "Failed to analyze constructor with param object")

	assert.True(t, info.IsParamObject, "Expected IsParamObject to be true")
	require.Len(t, info.Parameters, 4, "Expected exported, non-ignored fields only")

	byField := make(map[string]reflection.Parameter)
	for _, p := range info.Parameters {
		byField[p.Field] = p
	}

	assert.False(t, byField["Database"].Optional, "Database should not be optional")
	assert.Equal(t, 1, byField["Database"].Index, "Index is the struct field index")
	assert.True(t, byField["Logger"].Optional, "Logger should be optional")
	assert.Equal(t, "cache", byField["Cache"].Name)
	assert.Equal(t, "replica", byField["Replica"].Name)
	assert.True(t, byField["Replica"].Optional)
	assert.NotContains(t, byField, "Ignored")
	assert.NotContains(t, byField, "internal")
}

func TestAnalyzer_NonFunction(t *testing.T) {
	analyzer := reflection.New()

	db := &Database{ConnectionString: "test"}
	info, err := analyzer.Analyze(db)
	require.NoError(t, err, "Failed to analyze non-function")

	assert.False(t, info.IsFunc, "Expected IsFunc to be false for non-function")
	assert.Equal(t, reflect.TypeOf(db), info.Result)
	assert.Empty(t, info.Parameters)

	value, err := analyzer.Analyze(Database{ConnectionString: "value"})
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(Database{}), value.Result)
}

func TestAnalyzer_Errors(t *testing.T) {
	analyzer := reflection.New()

	tests := []struct {
		name        string
		constructor any
		contains    string
	}{
		{"nil", nil, "constructor cannot be nil"},
		{"nil func", (func() *Database)(nil), "constructor cannot be nil"},
		{"nil pointer instance", (*Database)(nil), "instance cannot be a nil pointer"},
		{"no returns", func() {}, "must return one value"},
		{"three returns", func() (*Database, *UserService, error) { return nil, nil, nil }, "must return one value"},
		{"error only", func() error { return nil }, "only returns error"},
		{"second not error", func() (*Database, string) { return nil, "" }, "second return value must be error"},
		{"variadic", func(names ...string) *Database { return nil }, "cannot be variadic"},
		{"pointer param object", func(p *ServiceParams) *Database { return nil }, "must be a struct value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := analyzer.Analyze(tt.constructor)
			require.Error(t, err)
			assert.Nil(t, info)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}

	assert.Zero(t, analyzer.CacheSize(), "failed analyses are not cached")
}

func TestAnalyzer_Caching(t *testing.T) {
	analyzer := reflection.New()

	first, err := analyzer.Analyze(NewDatabase)
	require.NoError(t, err)
	assert.Equal(t, 1, analyzer.CacheSize())

	second, err := analyzer.Analyze(NewDatabase)
	require.NoError(t, err)
	assert.Equal(t, 1, analyzer.CacheSize(), "same function is cached once")
	assert.Equal(t, first.Parameters, second.Parameters)

	_, err = analyzer.Analyze(NewUserService)
	require.NoError(t, err)
	assert.Equal(t, 2, analyzer.CacheSize())

	_, err = analyzer.Analyze(&Database{})
	require.NoError(t, err)
	assert.Equal(t, 2, analyzer.CacheSize(), "instances are not cached")
}

func TestAnalyzer_Closures(t *testing.T) {
	analyzer := reflection.New()

	makeConstructor := func(connStr string) func() *Database {
		return func() *Database {
			return &Database{ConnectionString: connStr}
		}
	}

	for _, connStr := range []string{"db1", "db2", "db3"} {
		info, err := analyzer.Analyze(makeConstructor(connStr))
		require.NoError(t, err, "Failed to analyze closure")

		result, err := reflection.Invoke(info, nil)
		require.NoError(t, err)
		assert.Equal(t, connStr, result.Interface().(*Database).ConnectionString, "closure captures must survive caching")
	}
}

func TestAnalyzer_ConcurrentAnalysis(t *testing.T) {
	analyzer := reflection.New()
	constructors := []any{NewDatabase, NewUserService, NewUserServiceWithError, NewServiceWithParams}

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := analyzer.Analyze(constructors[i%len(constructors)])
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, len(constructors), analyzer.CacheSize())
}

func TestParseFieldTags(t *testing.T) {
	tests := []struct {
		name string
		tag  reflect.StructTag
		want reflection.TagInfo
	}{
		{"empty", ``, reflection.TagInfo{}},
		{"inject", `inject:""`, reflection.TagInfo{Inject: true}},
		{"inject optional", `inject:"optional"`, reflection.TagInfo{Inject: true, Optional: true}},
		{"ignore", `inject:"-"`, reflection.TagInfo{Ignore: true}},
		{"optional", `optional:"true"`, reflection.TagInfo{Optional: true}},
		{"optional false", `optional:"false"`, reflection.TagInfo{}},
		{"name", `name:"primary"`, reflection.TagInfo{Name: "primary"}},
		{"named wins", `name:"a" named:"b"`, reflection.TagInfo{Name: "b"}},
		{"combined", `inject:"" named:"replica" optional:"true"`, reflection.TagInfo{Inject: true, Optional: true, Name: "replica"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reflection.ParseFieldTags(tt.tag))
		})
	}
}
