package ui

import "ydwatch/internal/render"

type segmentAppendMsg struct {
	Seg render.Segment
}

type segmentFillMsg struct {
	Index int
	Fill  int
}

type segmentsClearMsg struct{}

type labelMsg struct {
	Text string
}

type hideProgressMsg struct{}

type controlsMsg struct{}

type sessionDoneMsg struct {
	Err error
}

type allDoneMsg struct{}
