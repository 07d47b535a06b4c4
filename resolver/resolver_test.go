package resolver

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/includes/codec"
	"github.com/neuronlabs/includes/config"
	"github.com/neuronlabs/includes/errors"
	"github.com/neuronlabs/includes/namer"
)

func identifier(typ, id string) *codec.ResourceIdentifier {
	return &codec.ResourceIdentifier{Type: typ, ID: id}
}

func toOne(typ, id string) *codec.Relationship {
	return &codec.Relationship{ToOne: identifier(typ, id)}
}

func toMany(ids ...*codec.ResourceIdentifier) *codec.Relationship {
	return &codec.Relationship{Many: true, ToMany: ids}
}

func order() *codec.Resource {
	return &codec.Resource{
		ID:         "1",
		Type:       "orders",
		Attributes: map[string]interface{}{"total": 100},
		Relationships: map[string]*codec.Relationship{
			"customer": toOne("customers", "9"),
		},
	}
}

func customer() *codec.Resource {
	return &codec.Resource{
		ID:         "9",
		Type:       "customers",
		Attributes: map[string]interface{}{"name": "Acme"},
	}
}

func product(id, name string) *codec.Resource {
	return &codec.Resource{
		ID:         id,
		Type:       "products",
		Attributes: map[string]interface{}{"name": name},
	}
}

// TestResolve tests the Resolve method.
func TestResolve(t *testing.T) {
	r := New()

	t.Run("Included", func(t *testing.T) {
		result := r.Resolve(order(), []*codec.Resource{customer()})
		expected := Object{
			"id":         "1",
			"type":       "orders",
			"total":      100,
			"attributes": map[string]interface{}{"total": 100},
			"customer": Object{
				"id":         "9",
				"type":       "customers",
				"name":       "Acme",
				"attributes": map[string]interface{}{"name": "Acme"},
			},
		}
		assert.Equal(t, expected, result)
	})

	t.Run("MissingInclude", func(t *testing.T) {
		result, ok := r.Resolve(order(), nil).(Object)
		require.True(t, ok)

		assert.Equal(t, Object{"type": "customers", "id": "9"}, result["customer"])
		assert.True(t, IsIdentifier(result["customer"]))
		assert.False(t, IsResolved(result["customer"]))
	})

	t.Run("NoRelationships", func(t *testing.T) {
		res := customer()
		included := []*codec.Resource{order(), product("p1", "Hammer")}

		expected := Object{"id": "9", "type": "customers", "name": "Acme", "attributes": res.Attributes}
		assert.Equal(t, expected, r.Resolve(res, nil))
		assert.Equal(t, expected, r.Resolve(res, included))
	})

	t.Run("ToOneMatchesResolvedTarget", func(t *testing.T) {
		address := &codec.Resource{ID: "a1", Type: "addresses", Attributes: map[string]interface{}{"city": "Oslo"}}
		cust := customer()
		cust.Relationships = map[string]*codec.Relationship{"address": toOne("addresses", "a1")}
		included := []*codec.Resource{cust, address}

		result, ok := r.Resolve(order(), included).(Object)
		require.True(t, ok)
		assert.Equal(t, r.Resolve(cust, included), result["customer"])
		assert.Equal(t, "Oslo", result.One("customer").One("address")["city"])
	})

	t.Run("ToManyOrder", func(t *testing.T) {
		o := order()
		o.Relationships["products"] = toMany(identifier("products", "p1"), identifier("products", "p2"), identifier("products", "p3"))
		included := []*codec.Resource{product("p3", "Saw"), product("p1", "Hammer")}

		result, ok := r.Resolve(o, included).(Object)
		require.True(t, ok)

		products := result.Many("products")
		require.Len(t, products, 3)
		assert.Equal(t, "Hammer", products[0]["name"])
		assert.Equal(t, Object{"type": "products", "id": "p2"}, products[1])
		assert.Equal(t, "Saw", products[2]["name"])
	})

	t.Run("EmptyToMany", func(t *testing.T) {
		o := order()
		o.Relationships["products"] = toMany()

		result, ok := r.Resolve(o, nil).(Object)
		require.True(t, ok)
		assert.Equal(t, []Object{}, result["products"])
	})

	t.Run("NoData", func(t *testing.T) {
		o := order()
		o.Relationships["shipment"] = &codec.Relationship{}

		result, ok := r.Resolve(o, nil).(Object)
		require.True(t, ok)
		assert.NotContains(t, result, "shipment")
	})

	t.Run("Passthrough", func(t *testing.T) {
		assert.Nil(t, r.Resolve(nil, []*codec.Resource{customer()}))
		assert.Equal(t, 42, r.Resolve(42, []*codec.Resource{customer()}))
		assert.Equal(t, "text", r.Resolve("text", nil))

		flat := map[string]interface{}{"name": "already flattened"}
		assert.Equal(t, flat, r.Resolve(flat, nil))

		var nilResource *codec.Resource
		assert.Nil(t, r.Resolve(nilResource, nil))
	})

	t.Run("Sequence", func(t *testing.T) {
		included := []*codec.Resource{customer()}
		first, second := order(), order()
		second.ID = "2"

		result := r.Resolve([]*codec.Resource{first, second}, included)
		expected := []Object{r.Resolve(first, included).(Object), r.Resolve(second, included).(Object)}
		assert.Equal(t, expected, result)

		mixed, ok := r.Resolve([]interface{}{first, 42, nil}, included).([]interface{})
		require.True(t, ok)
		require.Len(t, mixed, 3)
		assert.Equal(t, expected[0], mixed[0])
		assert.Equal(t, 42, mixed[1])
		assert.Nil(t, mixed[2])
	})

	t.Run("SequenceWithSharedIncluded", func(t *testing.T) {
		// Both orders reference the same customer, each of them gets a resolved copy.
		first, second := order(), order()
		second.ID = "2"

		result, ok := r.Resolve([]*codec.Resource{first, second}, []*codec.Resource{customer()}).([]Object)
		require.True(t, ok)
		require.Len(t, result, 2)
		assert.True(t, result[0].One("customer").IsResolved())
		assert.True(t, result[1].One("customer").IsResolved())
	})

	t.Run("RawMaps", func(t *testing.T) {
		data := map[string]interface{}{
			"id":         "1",
			"type":       "orders",
			"attributes": map[string]interface{}{"total": 100},
			"relationships": map[string]interface{}{
				"customer": map[string]interface{}{
					"data": map[string]interface{}{"type": "customers", "id": "9"},
				},
			},
		}
		included := []*codec.Resource{customer()}

		assert.Equal(t, r.Resolve(order(), included), r.Resolve(data, included))

		result, ok := r.Resolve([]interface{}{data}, included).([]interface{})
		require.True(t, ok)
		require.Len(t, result, 1)
		assert.Equal(t, r.Resolve(order(), included), result[0])
	})

	t.Run("NumericIdentifiers", func(t *testing.T) {
		// Numeric ids are compared by their string representation.
		data := map[string]interface{}{
			"id":   float64(1),
			"type": "orders",
			"relationships": map[string]interface{}{
				"customer": map[string]interface{}{
					"data": map[string]interface{}{"type": "customers", "id": float64(9)},
				},
			},
		}

		result, ok := r.Resolve(data, []*codec.Resource{customer()}).(Object)
		require.True(t, ok)
		assert.Equal(t, "1", result["id"])
		assert.Equal(t, "Acme", result.One("customer")["name"])
	})

	t.Run("AttributeOverridesIdentity", func(t *testing.T) {
		res := &codec.Resource{ID: "1", Type: "notes", Attributes: map[string]interface{}{"type": "internal"}}

		result, ok := r.Resolve(res, nil).(Object)
		require.True(t, ok)
		assert.Equal(t, "internal", result["type"])
		assert.Equal(t, "1", result.ID())
	})

	t.Run("FirstIncludedWins", func(t *testing.T) {
		included := []*codec.Resource{customer(), {ID: "9", Type: "customers", Attributes: map[string]interface{}{"name": "Other"}}}

		result, ok := r.Resolve(order(), included).(Object)
		require.True(t, ok)
		assert.Equal(t, "Acme", result.One("customer")["name"])
	})

	t.Run("NoMutation", func(t *testing.T) {
		o := order()
		o.Relationships["products"] = toMany(identifier("products", "p1"))
		included := []*codec.Resource{customer(), product("p1", "Hammer")}

		r.Resolve(o, included)

		assert.Equal(t, map[string]interface{}{"total": 100}, o.Attributes)
		assert.Len(t, o.Relationships, 2)
		assert.Equal(t, identifier("customers", "9"), o.Relationships["customer"].ToOne)
		assert.Len(t, included, 2)
		assert.Equal(t, map[string]interface{}{"name": "Acme"}, included[0].Attributes)
		assert.Nil(t, included[0].Relationships)
	})
}

// TestResolveCycles tests resolving the cyclic relationship graphs.
func TestResolveCycles(t *testing.T) {
	r := New()

	t.Run("TwoResources", func(t *testing.T) {
		a := &codec.Resource{ID: "a", Type: "nodes", Relationships: map[string]*codec.Relationship{"next": toOne("nodes", "b")}}
		b := &codec.Resource{ID: "b", Type: "nodes", Relationships: map[string]*codec.Relationship{"next": toOne("nodes", "a")}}

		result, ok := r.Resolve(a, []*codec.Resource{a, b}).(Object)
		require.True(t, ok)

		next := result.One("next")
		require.NotNil(t, next)
		assert.Equal(t, "b", next.ID())
		assert.True(t, next.IsResolved())
		assert.Equal(t, Object{"type": "nodes", "id": "a"}, next["next"])
	})

	t.Run("SelfReference", func(t *testing.T) {
		a := &codec.Resource{ID: "a", Type: "nodes", Relationships: map[string]*codec.Relationship{"self": toOne("nodes", "a")}}

		result, ok := r.Resolve(a, []*codec.Resource{a}).(Object)
		require.True(t, ok)
		assert.Equal(t, Object{"type": "nodes", "id": "a"}, result["self"])
	})

	t.Run("Siblings", func(t *testing.T) {
		// The same resource referenced twice by different branches is not a cycle.
		shared := product("p1", "Hammer")
		o := order()
		o.Relationships["products"] = toMany(identifier("products", "p1"), identifier("products", "p1"))

		result, ok := r.Resolve(o, []*codec.Resource{shared}).(Object)
		require.True(t, ok)

		products := result.Many("products")
		require.Len(t, products, 2)
		assert.True(t, products[0].IsResolved())
		assert.True(t, products[1].IsResolved())
	})
}

// TestMaxDepth tests the MaxDepth option.
func TestMaxDepth(t *testing.T) {
	a := &codec.Resource{ID: "a", Type: "nodes", Relationships: map[string]*codec.Relationship{"next": toOne("nodes", "b")}}
	b := &codec.Resource{ID: "b", Type: "nodes", Relationships: map[string]*codec.Relationship{"next": toOne("nodes", "c")}}
	c := &codec.Resource{ID: "c", Type: "nodes", Attributes: map[string]interface{}{"last": true}}
	included := []*codec.Resource{b, c}

	t.Run("Unlimited", func(t *testing.T) {
		result, ok := New().Resolve(a, included).(Object)
		require.True(t, ok)
		assert.Equal(t, true, result.One("next").One("next")["last"])
	})

	t.Run("DirectOnly", func(t *testing.T) {
		result, ok := New(WithMaxDepth(1)).Resolve(a, included).(Object)
		require.True(t, ok)

		next := result.One("next")
		assert.True(t, next.IsResolved())
		assert.Equal(t, Object{"type": "nodes", "id": "c"}, next["next"])
	})

	t.Run("Negative", func(t *testing.T) {
		assert.Equal(t, 0, New(WithMaxDepth(-3)).Options().MaxDepth)
	})
}

// TestMissPolicy tests the resolver miss policies.
func TestMissPolicy(t *testing.T) {
	o := order()
	o.Relationships["products"] = toMany(identifier("products", "p1"), identifier("products", "p2"))
	included := []*codec.Resource{product("p2", "Saw")}

	t.Run("KeepIdentifier", func(t *testing.T) {
		result, ok := New(WithMissPolicy(MissKeepIdentifier)).Resolve(o, included).(Object)
		require.True(t, ok)
		assert.True(t, IsIdentifier(result["customer"]))
		assert.Len(t, result.Many("products"), 2)
	})

	t.Run("Null", func(t *testing.T) {
		result, ok := New(WithMissPolicy(MissNull)).Resolve(o, included).(Object)
		require.True(t, ok)

		assert.Contains(t, result, "customer")
		assert.True(t, result["customer"] == nil)
		_, isObject := result["customer"].(Object)
		assert.False(t, isObject)

		products := result.Many("products")
		require.Len(t, products, 2)
		assert.Nil(t, products[0])
		assert.Equal(t, "Saw", products[1]["name"])
	})

	t.Run("Drop", func(t *testing.T) {
		result, ok := New(WithMissPolicy(MissDrop)).Resolve(o, included).(Object)
		require.True(t, ok)

		assert.NotContains(t, result, "customer")
		products := result.Many("products")
		require.Len(t, products, 1)
		assert.Equal(t, "p2", products[0].ID())
	})

	t.Run("RelatedKeepIdentifier", func(t *testing.T) {
		r := New(WithMissPolicy(MissKeepIdentifier))
		assert.Equal(t, Object{"type": "customers", "id": "9"}, r.Related(o, "customer", included))
		assert.Len(t, r.RelatedList(o, "products", included), 2)
	})

	t.Run("Parse", func(t *testing.T) {
		for name, expected := range map[string]MissPolicy{
			"":           MissDefault,
			"default":    MissDefault,
			"identifier": MissKeepIdentifier,
			"Null":       MissNull,
			" drop ":     MissDrop,
		} {
			policy, err := ParseMissPolicy(name)
			require.NoError(t, err, name)
			assert.Equal(t, expected, policy, name)
		}

		_, err := ParseMissPolicy("ignore")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidOption))
		assert.True(t, errors.Is(err, ErrResolver))
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "identifier", MissKeepIdentifier.String())
		assert.Equal(t, "unknown", MissPolicy(20).String())
	})
}

// TestRequireIncluded tests the RequireIncluded option.
func TestRequireIncluded(t *testing.T) {
	r := New(WithRequireIncluded(true))

	t.Run("Empty", func(t *testing.T) {
		result := r.Resolve(order(), nil)
		expected := Object{"id": "1", "type": "orders", "total": 100, "attributes": map[string]interface{}{"total": 100}}
		assert.Equal(t, expected, result)
	})

	t.Run("NonEmpty", func(t *testing.T) {
		result, ok := r.Resolve(order(), []*codec.Resource{product("p1", "Hammer")}).(Object)
		require.True(t, ok)
		assert.True(t, IsIdentifier(result["customer"]))
	})
}

// TestKeyNamer tests the key namer option.
func TestKeyNamer(t *testing.T) {
	res := &codec.Resource{
		ID:         "1",
		Type:       "orders",
		Attributes: map[string]interface{}{"created_at": "2019-01-01"},
		Relationships: map[string]*codec.Relationship{
			"billing-customer": toOne("customers", "9"),
		},
	}
	r := New(WithKeyNamer(namer.NamingLowerCamel))

	result, ok := r.Resolve(res, []*codec.Resource{customer()}).(Object)
	require.True(t, ok)

	assert.Equal(t, "2019-01-01", result["createdAt"])
	assert.NotContains(t, result, "created_at")
	assert.Equal(t, "Acme", result.One("billingCustomer")["name"])
	// The original attributes are not renamed.
	assert.Contains(t, result.Attributes(), "created_at")
}

// TestResolveDocument tests the ResolveDocument method.
func TestResolveDocument(t *testing.T) {
	r := New()

	doc := &codec.Document{
		Data:     order(),
		Included: []*codec.Resource{customer()},
		Meta:     codec.Meta{"total": 1},
		Links:    codec.Links{"self": "/orders/1"},
	}
	resolved := r.ResolveDocument(doc)
	require.NotNil(t, resolved)

	assert.Equal(t, doc.Meta, resolved.Meta)
	assert.Equal(t, doc.Links, resolved.Links)
	assert.Equal(t, doc.Included, resolved.Included)
	assert.Equal(t, r.Resolve(doc.Data, doc.Included), resolved.Data)

	// The input document is not modified.
	_, isResource := doc.Data.(*codec.Resource)
	assert.True(t, isResource)

	assert.Nil(t, r.ResolveDocument(nil))
}

// TestRelated tests the Related method.
func TestRelated(t *testing.T) {
	r := New()
	included := []*codec.Resource{customer(), product("p1", "Hammer"), product("p2", "Saw")}

	t.Run("Found", func(t *testing.T) {
		related := r.Related(order(), "customer", included)
		assert.Equal(t, r.Resolve(customer(), included), related)
	})

	t.Run("AbsentRelationship", func(t *testing.T) {
		assert.Nil(t, r.Related(order(), "warehouse", included))
	})

	t.Run("NoData", func(t *testing.T) {
		o := order()
		o.Relationships["shipment"] = &codec.Relationship{}
		assert.Nil(t, r.Related(o, "shipment", included))
	})

	t.Run("EmptyIncluded", func(t *testing.T) {
		assert.Nil(t, r.Related(order(), "customer", nil))
		assert.Nil(t, New(WithMissPolicy(MissKeepIdentifier)).Related(order(), "customer", []*codec.Resource{}))
	})

	t.Run("NoMatch", func(t *testing.T) {
		assert.Nil(t, r.Related(order(), "customer", []*codec.Resource{product("p1", "Hammer")}))
	})

	t.Run("ToManyFirst", func(t *testing.T) {
		o := order()
		o.Relationships["products"] = toMany(identifier("products", "p2"), identifier("products", "p1"))

		related := r.Related(o, "products", included)
		require.NotNil(t, related)
		assert.Equal(t, "Saw", related["name"])
	})

	t.Run("NilResource", func(t *testing.T) {
		assert.Nil(t, r.Related(nil, "customer", included))
	})

	t.Run("BackReference", func(t *testing.T) {
		cust := customer()
		cust.Relationships = map[string]*codec.Relationship{"orders": toMany(identifier("orders", "1"))}
		o := order()

		related := r.Related(o, "customer", []*codec.Resource{o, cust})
		require.NotNil(t, related)
		assert.Equal(t, []Object{{"type": "orders", "id": "1"}}, related.Many("orders"))
	})
}

// TestRelatedList tests the RelatedList method.
func TestRelatedList(t *testing.T) {
	r := New()
	included := []*codec.Resource{customer(), product("p1", "Hammer"), product("p3", "Saw")}

	o := order()
	o.Relationships["products"] = toMany(identifier("products", "p3"), identifier("products", "p2"), identifier("products", "p1"))

	t.Run("ToMany", func(t *testing.T) {
		list := r.RelatedList(o, "products", included)
		require.Len(t, list, 2)
		assert.Equal(t, "Saw", list[0]["name"])
		assert.Equal(t, "Hammer", list[1]["name"])
	})

	t.Run("ToOne", func(t *testing.T) {
		list := r.RelatedList(o, "customer", included)
		require.Len(t, list, 1)
		assert.Equal(t, r.Related(o, "customer", included), list[0])
	})

	t.Run("ToOneMissing", func(t *testing.T) {
		list := r.RelatedList(o, "customer", []*codec.Resource{product("p1", "Hammer")})
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("NeverNil", func(t *testing.T) {
		for name, list := range map[string][]Object{
			"NilResource": r.RelatedList(nil, "products", included),
			"Absent":      r.RelatedList(o, "warehouses", included),
			"NoIncluded":  r.RelatedList(o, "products", nil),
			"NoData":      r.RelatedList(&codec.Resource{ID: "1", Type: "orders", Relationships: map[string]*codec.Relationship{"products": {}}}, "products", included),
		} {
			assert.NotNil(t, list, name)
			assert.Empty(t, list, name)
		}
	})
}

// TestNewFromConfig tests creating the resolver from the config.
func TestNewFromConfig(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		r, err := NewFromConfig(&config.Resolver{MissPolicy: "drop", MaxDepth: 2, RequireIncluded: true, NamingConvention: "snake"})
		require.NoError(t, err)

		options := r.Options()
		assert.Equal(t, MissDrop, options.MissPolicy)
		assert.Equal(t, 2, options.MaxDepth)
		assert.True(t, options.RequireIncluded)
		require.NotNil(t, options.KeyNamer)
		assert.Equal(t, "created_at", options.KeyNamer("createdAt"))
	})

	t.Run("Nil", func(t *testing.T) {
		r, err := NewFromConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, MissDefault, r.Options().MissPolicy)
	})

	t.Run("Default", func(t *testing.T) {
		r, err := NewFromConfig(config.DefaultConfig().Resolver)
		require.NoError(t, err)
		assert.Equal(t, MissDefault, r.Options().MissPolicy)
		assert.Nil(t, r.Options().KeyNamer)
	})

	t.Run("InvalidPolicy", func(t *testing.T) {
		_, err := NewFromConfig(&config.Resolver{MissPolicy: "ignore"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidOption))
	})

	t.Run("InvalidConvention", func(t *testing.T) {
		_, err := NewFromConfig(&config.Resolver{NamingConvention: "screaming"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, namer.ErrUnknownConvention))
	})

	t.Run("NegativeDepth", func(t *testing.T) {
		_, err := NewFromConfig(&config.Resolver{MaxDepth: -1})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidOption))
	})
}

// TestConcurrentResolve tests using single resolver from multiple goroutines.
func TestConcurrentResolve(t *testing.T) {
	r := New(WithMaxDepth(3))
	o := order()
	o.Relationships["products"] = toMany(identifier("products", "p1"), identifier("products", "p2"))
	included := []*codec.Resource{customer(), product("p1", "Hammer"), product("p2", "Saw")}
	expected := r.Resolve(o, included)

	results := make([]interface{}, 32)
	wg := &sync.WaitGroup{}
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.Resolve(o, included)
		}(i)
	}
	wg.Wait()

	for _, result := range results {
		assert.Equal(t, expected, result)
	}
}

// TestObject tests the Object helpers.
func TestObject(t *testing.T) {
	id := Identifier(codec.ResourceIdentifier{Type: "customers", ID: "9"})
	assert.True(t, IsIdentifier(id))
	assert.False(t, id.IsResolved())
	assert.Equal(t, codec.ResourceIdentifier{Type: "customers", ID: "9"}, id.Identifier())

	assert.False(t, IsIdentifier(map[string]interface{}{"type": "customers", "id": "9"}))
	assert.False(t, IsIdentifier(Object{"type": "customers", "name": "Acme"}))
	assert.False(t, IsResolved(nil))

	resolved := Object{"type": "customers", "id": "9", "attributes": map[string]interface{}{}}
	assert.True(t, IsResolved(resolved))
	assert.NotNil(t, resolved.Attributes())
	assert.Nil(t, resolved.One("missing"))
	assert.Nil(t, resolved.Many("missing"))
}
