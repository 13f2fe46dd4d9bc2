package lookup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

type fakeGeocoder struct {
	mu    sync.Mutex
	place Place
	err   error
	calls int
	seen  []Coordinate
}

func (f *fakeGeocoder) ReverseGeocode(ctx context.Context, c Coordinate) (Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.seen = append(f.seen, c)
	return f.place, f.err
}

type fakeCountries struct {
	mu    sync.Mutex
	info  CountryInfo
	err   error
	calls int
	names []string
}

func (f *fakeCountries) LookupCountry(ctx context.Context, name string) (CountryInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.names = append(f.names, name)
	return f.info, f.err
}

// gatedGeocoder 讓測試控制每次呼叫何時回來
type gatedGeocoder struct {
	places  map[float64]Place
	release map[float64]chan struct{}
	started chan float64
}

func (g *gatedGeocoder) ReverseGeocode(ctx context.Context, c Coordinate) (Place, error) {
	g.started <- c.Lat
	<-g.release[c.Lat]
	return g.places[c.Lat], nil
}

type countryByName map[string]CountryInfo

func (m countryByName) LookupCountry(ctx context.Context, name string) (CountryInfo, error) {
	info, ok := m[name]
	if !ok {
		return CountryInfo{}, errors.New("not found")
	}
	return info, nil
}

var unitedStates = CountryInfo{
	Country:         "United States",
	Flag:            "us.svg",
	Population:      331000000,
	FlagDescription: "Flag of the US",
}

type OrchestratorSuite struct{}

var _ = Suite(&OrchestratorSuite{})

func (s *OrchestratorSuite) TestStartsIdle(c *C) {
	o := NewOrchestrator(&fakeGeocoder{}, &fakeCountries{})
	c.Assert(o.State(), DeepEquals, Idle())
}

func (s *OrchestratorSuite) TestGeocoderFailureSkipsCountryLookup(c *C) {
	g := &fakeGeocoder{err: errors.New("maps: REQUEST_DENIED")}
	cl := &fakeCountries{info: unitedStates}
	o := NewOrchestrator(g, cl)

	st := o.HandleClick(context.Background(), Coordinate{Lat: 1, Lng: 2})
	c.Assert(st.Phase, Equals, PhaseError)
	c.Assert(st.Message, Equals, "Geocoder error. Please try again.")
	c.Assert(st.Country, IsNil)
	c.Assert(cl.calls, Equals, 0)
	c.Assert(o.State(), DeepEquals, st)
}

func (s *OrchestratorSuite) TestNoCountrySkipsCountryLookup(c *C) {
	g := &fakeGeocoder{place: Place{Country: "  "}}
	cl := &fakeCountries{info: unitedStates}
	o := NewOrchestrator(g, cl)

	st := o.HandleClick(context.Background(), Coordinate{Lat: 0, Lng: -30})
	c.Assert(st.Phase, Equals, PhaseError)
	c.Assert(st.Message, Equals, "No country found at this location, please click somewhere else.")
	c.Assert(cl.calls, Equals, 0)
}

func (s *OrchestratorSuite) TestCountryLookupFailure(c *C) {
	g := &fakeGeocoder{place: Place{Country: "Atlantis"}}
	cl := &fakeCountries{err: errors.New("status 404")}
	o := NewOrchestrator(g, cl)

	st := o.HandleClick(context.Background(), Coordinate{Lat: 10, Lng: 10})
	c.Assert(st.Phase, Equals, PhaseError)
	c.Assert(st.Message, Equals, "Failed to fetch country information, please try clicking somewhere else.")
	c.Assert(cl.names, DeepEquals, []string{"Atlantis"})
}

func (s *OrchestratorSuite) TestScenarioUnitedStates(c *C) {
	g := &fakeGeocoder{place: Place{Country: "United States", CountryCode: "US"}}
	cl := &fakeCountries{info: unitedStates}
	o := NewOrchestrator(g, cl)

	click := Coordinate{Lat: 42.70, Lng: -84.48}
	st := o.HandleClick(context.Background(), click)
	c.Assert(st.Phase, Equals, PhaseResult)
	c.Assert(st.Message, Equals, "")
	c.Assert(*st.Country, DeepEquals, unitedStates)
	c.Assert(g.seen, DeepEquals, []Coordinate{click})
	c.Assert(cl.names, DeepEquals, []string{"United States"})
}

func (s *OrchestratorSuite) TestSameClickTwiceGivesSameResult(c *C) {
	g := &fakeGeocoder{place: Place{Country: "United States"}}
	cl := &fakeCountries{info: unitedStates}
	o := NewOrchestrator(g, cl)

	click := Coordinate{Lat: 42.70, Lng: -84.48}
	first := o.HandleClick(context.Background(), click)
	second := o.HandleClick(context.Background(), click)
	c.Assert(*second.Country, DeepEquals, *first.Country)
	c.Assert(second.Phase, Equals, first.Phase)
	c.Assert(second.Attempt, Equals, first.Attempt+1)
}

func (s *OrchestratorSuite) TestErrorClearedByNextSuccess(c *C) {
	g := &fakeGeocoder{err: errors.New("OVER_QUERY_LIMIT")}
	cl := &fakeCountries{info: unitedStates}
	o := NewOrchestrator(g, cl)

	c.Assert(o.HandleClick(context.Background(), Coordinate{}).Phase, Equals, PhaseError)

	g.err = nil
	g.place = Place{Country: "United States"}
	st := o.HandleClick(context.Background(), Coordinate{})
	c.Assert(st.Phase, Equals, PhaseResult)
	c.Assert(st.Message, Equals, "")
}

func (s *OrchestratorSuite) TestSupersededAttemptIsDiscarded(c *C) {
	g := &gatedGeocoder{
		places: map[float64]Place{
			1: {Country: "France"},
			2: {Country: "Spain"},
		},
		release: map[float64]chan struct{}{
			1: make(chan struct{}),
			2: make(chan struct{}),
		},
		started: make(chan float64, 2),
	}
	countries := countryByName{
		"France": {Country: "France"},
		"Spain":  {Country: "Spain"},
	}
	o := NewOrchestrator(g, countries)

	firstDone := make(chan State, 1)
	go func() { firstDone <- o.HandleClick(context.Background(), Coordinate{Lat: 1}) }()
	c.Assert(<-g.started, Equals, float64(1))

	secondDone := make(chan State, 1)
	go func() { secondDone <- o.HandleClick(context.Background(), Coordinate{Lat: 2}) }()
	c.Assert(<-g.started, Equals, float64(2))

	close(g.release[2])
	second := <-secondDone
	c.Assert(second.Country.Country, Equals, "Spain")

	// 第一次點擊比較晚回來，不能蓋掉第二次的結果
	close(g.release[1])
	first := <-firstDone
	c.Assert(first, DeepEquals, second)
	c.Assert(o.State().Country.Country, Equals, "Spain")
}

func (s *OrchestratorSuite) TestResetReturnsToIdle(c *C) {
	o := NewOrchestrator(&fakeGeocoder{place: Place{Country: "United States"}}, &fakeCountries{info: unitedStates})
	o.HandleClick(context.Background(), Coordinate{})
	o.Reset()
	c.Assert(o.State().Phase, Equals, PhaseIdle)
}

func (s *OrchestratorSuite) TestSubscribeSeesTransitions(c *C) {
	o := NewOrchestrator(&fakeGeocoder{place: Place{Country: "United States"}}, &fakeCountries{info: unitedStates})
	updates, cancel := o.Subscribe()
	defer cancel()

	c.Assert((<-updates).Phase, Equals, PhaseIdle)

	o.HandleClick(context.Background(), Coordinate{})

	// 讀得慢只會看到最後一筆
	select {
	case st := <-updates:
		c.Assert(st.Phase, Equals, PhaseResult)
	case <-time.After(time.Second):
		c.Fatal("no state update")
	}
}

func (s *OrchestratorSuite) TestSubscribeCancelClosesChannel(c *C) {
	o := NewOrchestrator(&fakeGeocoder{}, &fakeCountries{})
	updates, cancel := o.Subscribe()
	<-updates
	cancel()
	cancel()

	_, ok := <-updates
	c.Assert(ok, Equals, false)

	// 取消後的轉換不會送到已關閉的 channel
	o.Reset()
}

func (s *OrchestratorSuite) TestMessageFallsBackToLookupFailure(c *C) {
	c.Assert(Message(errors.New("boom")), Equals, ErrCountryLookupFailed.Error())
	c.Assert(Message(ErrGeocodeFailed), Equals, "Geocoder error. Please try again.")
}
