package domain

// ProxyRule forwards requests under a path prefix to an upstream.
type ProxyRule struct {
	Target       string
	ChangeOrigin bool
}

// DevServer holds the development server settings.
type DevServer struct {
	d     *Descriptor
	host  string
	port  int
	hot   bool
	proxy *Table[ProxyRule]
}

// Host sets the listen host.
func (s *DevServer) Host(host string) *DevServer {
	if s.d.s.mutable("dev server host") {
		s.host = host
	}
	return s
}

// Port sets the listen port.
func (s *DevServer) Port(port int) *DevServer {
	if s.d.s.mutable("dev server port") {
		s.port = port
	}
	return s
}

// Hot toggles hot module replacement.
func (s *DevServer) Hot(enable bool) *DevServer {
	if s.d.s.mutable("dev server hot") {
		s.hot = enable
	}
	return s
}

// Proxy sets the proxy rule for path, overwriting any earlier rule.
func (s *DevServer) Proxy(path string, rule ProxyRule) *DevServer {
	if s.d.s.mutable("dev server proxy") {
		s.proxy.Set(path, rule)
	}
	return s
}

// DeleteProxy removes the proxy rule for path if present.
func (s *DevServer) DeleteProxy(path string) *DevServer {
	if s.d.s.mutable("dev server proxy delete") {
		s.proxy.Delete(path)
	}
	return s
}

// When applies then if cond holds, otherwise applies otherwise.
func (s *DevServer) When(cond bool, then, otherwise func(*DevServer)) *DevServer {
	return When(s, cond, then, otherwise)
}

// End returns the owning descriptor.
func (s *DevServer) End() *Descriptor {
	return s.d
}
