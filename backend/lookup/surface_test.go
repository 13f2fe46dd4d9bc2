package lookup

import (
	"context"
	"math"

	. "gopkg.in/check.v1"
)

type SurfaceSuite struct{}

var _ = Suite(&SurfaceSuite{})

func (s *SurfaceSuite) TestDefaults(c *C) {
	cfg := NewSurface(MapConfig{APIKey: "key"}).Config()
	c.Assert(cfg.APIKey, Equals, "key")
	c.Assert(cfg.Center, Equals, Coordinate{Lat: 42.70, Lng: -84.48})
	c.Assert(cfg.Zoom, Equals, 5)
}

func (s *SurfaceSuite) TestClickInvokesHandlerOnce(c *C) {
	sf := NewSurface(MapConfig{})
	var got []Coordinate
	sf.OnClick(func(ctx context.Context, co Coordinate) State {
		got = append(got, co)
		return Loading(7)
	})

	st, err := sf.Click(context.Background(), Coordinate{Lat: 42.70, Lng: -84.48})
	c.Assert(err, IsNil)
	c.Assert(st, DeepEquals, Loading(7))
	c.Assert(got, DeepEquals, []Coordinate{{Lat: 42.70, Lng: -84.48}})
}

func (s *SurfaceSuite) TestClickWithoutHandler(c *C) {
	_, err := NewSurface(MapConfig{}).Click(context.Background(), Coordinate{})
	c.Assert(err, Equals, ErrNoHandler)
}

func (s *SurfaceSuite) TestClickRejectsInvalidCoordinate(c *C) {
	sf := NewSurface(MapConfig{})
	called := false
	sf.OnClick(func(ctx context.Context, co Coordinate) State {
		called = true
		return Idle()
	})

	_, err := sf.Click(context.Background(), Coordinate{Lat: 91})
	c.Assert(err, ErrorMatches, "invalid coordinate.*")
	_, err = sf.Click(context.Background(), Coordinate{Lat: math.NaN()})
	c.Assert(err, ErrorMatches, "invalid coordinate.*")
	c.Assert(called, Equals, false)
}

func (s *SurfaceSuite) TestNormalizeWrapsLongitude(c *C) {
	n, err := Coordinate{Lat: 10, Lng: 190}.Normalize()
	c.Assert(err, IsNil)
	c.Assert(n.Lat, Equals, float64(10))
	c.Assert(math.Abs(n.Lng-(-170)) < 1e-9, Equals, true)

	n, err = Coordinate{Lat: -33.9, Lng: 18.4}.Normalize()
	c.Assert(err, IsNil)
	c.Assert(n, Equals, Coordinate{Lat: -33.9, Lng: 18.4})
}
