package controller

import "log"

// Opt defines a controller option
type Opt func(*Controller)

// WithPublisher configures a publisher for the controller
func WithPublisher(p Publisher) Opt {
	return func(c *Controller) {
		c.publishers = append(c.publishers, p)
	}
}

// WithRenderer adds a surface that paints every colour the controller produces
func WithRenderer(r Renderer) Opt {
	return func(c *Controller) {
		c.renderers = append(c.renderers, r)
	}
}

// WithScheduler replaces the default ticker based scheduler
func WithScheduler(s Scheduler) Opt {
	return func(c *Controller) {
		c.scheduler = s
	}
}

// WithLogger sets the logger used for lifecycle messages
func WithLogger(l *log.Logger) Opt {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}
