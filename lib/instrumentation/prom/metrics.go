package prom

import (
	"gfx.cafe/open/gotoprom"
	"github.com/prometheus/client_golang/prometheus"
)

type RemoteLabels struct {
	Remote string `label:"remote"`
}

type StateLabels struct {
	State string `label:"state"`
}

type TransitionLabels struct {
	From string `label:"from"`
	To   string `label:"to"`
}

var Conn struct {
	Open        func(RemoteLabels) prometheus.Gauge       `name:"open" help:"open connections"`
	FramesIn    func(StateLabels) prometheus.Counter      `name:"frames_in" help:"frames read"`
	FramesOut   func(StateLabels) prometheus.Counter      `name:"frames_out" help:"frames written"`
	BytesIn     func(StateLabels) prometheus.Counter      `name:"bytes_in" help:"payload bytes read, after decompression"`
	BytesOut    func(StateLabels) prometheus.Counter      `name:"bytes_out" help:"payload bytes written, before compression"`
	Unknown     func(StateLabels) prometheus.Counter      `name:"unknown_packets" help:"well framed packets with no descriptor, skipped"`
	DecodeError func(StateLabels) prometheus.Counter      `name:"decode_errors" help:"frames that failed to decode"`
	Transition  func(TransitionLabels) prometheus.Counter `name:"transitions" help:"state transitions"`
	Dropped     func(StateLabels) prometheus.Counter      `name:"delivery_dropped" help:"packets not delivered because the connection closed"`
}

type PipelineLabels struct {
	Stage string `label:"stage"`
}

var Pipeline struct {
	Enabled func(PipelineLabels) prometheus.Counter `name:"enabled" help:"pipeline stages enabled"`
}

type ReactorLabels struct {
	State  string `label:"state"`
	Packet string `label:"packet"`
}

var Reactor struct {
	Duration func(ReactorLabels) prometheus.Histogram `name:"duration_ms" buckets:"0.01,0.05,0.1,0.5,1,5,10,50,100,500,1000,5000,10000" help:"ms the read loop was held by a reaction"`
	Errors   func(ReactorLabels) prometheus.Counter   `name:"errors" help:"reactions that returned an error"`
}

func init() {
	gotoprom.MustInit(&Conn, "mcwire_conn", prometheus.Labels{})
	gotoprom.MustInit(&Pipeline, "mcwire_pipeline", prometheus.Labels{})
	gotoprom.MustInit(&Reactor, "mcwire_reactor", prometheus.Labels{})
}
