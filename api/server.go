package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/icon-project/btp2/common/errors"
	"github.com/icon-project/btp2/common/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/soapkit/soap-sdk/soap"
)

const (
	HeaderSOAPAction = "SOAPAction"
	UrlMonitor       = "/monitor"
	UrlDoc           = "/doc"
)

func Logger(l log.Logger) log.Logger {
	return l.WithFields(log.Fields{log.FieldKeyModule: "api"})
}

type Server struct {
	e        *echo.Echo
	addr     string
	r        *soap.Registry
	dp       soap.DocumentParser
	ip       soap.InstanceProvider
	u        websocket.Upgrader
	mtx      sync.Mutex
	monitors map[*websocket.Conn]struct{}
	lv       log.Level
	l        log.Logger
}

func NewServer(addr string, r *soap.Registry, dp soap.DocumentParser, ip soap.InstanceProvider,
	transportLogLevel log.Level, l log.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = HttpErrorHandler
	return &Server{
		e:        e,
		addr:     addr,
		r:        r,
		dp:       dp,
		ip:       ip,
		monitors: make(map[*websocket.Conn]struct{}),
		lv:       soap.EnsureTransportLogLevel(transportLogLevel),
		l:        Logger(l),
	}
}

func (s *Server) Start() error {
	s.l.Infoln("starting the server")
	s.e.Use(
		middleware.CORSWithConfig(middleware.CORSConfig{
			MaxAge: 3600,
		}),
		middleware.Recover())
	s.RegisterMonitorHandler()
	s.RegisterDocHandler()
	s.RegisterSOAPHandler()
	return s.e.Start(s.addr)
}

func (s *Server) Stop() error {
	s.l.Infoln("shutting down the server")

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	return s.e.Shutdown(ctx)
}

func (s *Server) RegisterSOAPHandler() {
	s.e.POST("/*", s.dispatch, middleware.BodyDump(func(c echo.Context, reqBody []byte, resBody []byte) {
		s.l.Debugf("url=%s", c.Request().RequestURI)
		s.l.Logf(s.lv, "request=%s", reqBody)
		s.l.Logf(s.lv, "response=%s", resBody)
	}), s.observe)
}

// dispatch runs a single request through the pipeline: match the path
// grammar, resolve the method by SOAPAction header, check arity, decode the
// single argument, invoke and reply. Every failure is terminal for the
// request and mapped by HttpErrorHandler.
func (s *Server) dispatch(c echo.Context) error {
	req := c.Request()
	classPath, ok := soap.MatchRequestPath(req.URL.Path)
	if !ok {
		return soap.ErrorCodeNotFoundMethod.Errorf("not found class path:%s", req.URL.RequestURI())
	}
	methodName := strings.Trim(req.Header.Get(HeaderSOAPAction), `"`)
	key := soap.RetrievalKey(classPath + "/" + methodName)
	m, ok := s.r.Lookup(key)
	if !ok {
		return soap.ErrorCodeNotFoundMethod.Errorf("not found method key:%s", key)
	}
	if len(m.Params) != 1 {
		s.l.Debugf("invalid request, bad parameters count key:%s", key)
		return soap.ErrorCodeInvalidArgument.Errorf("method must have one single formal parameter key:%s", key)
	}
	var arg interface{}
	switch m.Params[0] {
	case soap.ParamDocument:
		doc, err := s.dp.Parse(req.Body)
		if err != nil {
			s.l.Debugf("fail to Parse err:%+v", err)
			if _, ok := errors.CoderOf(err); ok {
				return err
			}
			return soap.ErrorCodeDecode.Wrapf(err, "fail to parse document err:%s", err.Error())
		}
		arg = doc
	case soap.ParamStream:
		arg = req.Body
	default:
		s.l.Debugf("invalid request, unrecognized parameter type key:%s type:%s", key, m.Params[0])
		return soap.ErrorCodeInvalidArgument.Errorf("unrecognized formal parameter type:%s", m.Params[0])
	}
	// released on every exit path, a close failure does not downgrade a
	// successful invocation
	defer s.closeArgument(arg)
	instance, err := s.ip.Instance(m.Interface)
	if err != nil {
		s.l.Debugf("fail to Instance err:%+v", err)
		return soap.ErrorCodeInternal.Wrapf(err, "fail to resolve instance interface:%s err:%s",
			m.Interface, err.Error())
	}
	if err = m.Handler(instance, arg); err != nil {
		if soap.ErrorCodeUnauthorized.Equals(err) {
			s.l.Debugf("unauthorized key:%s", key)
			return err
		}
		s.l.Errorf("fail to invoke key:%s err:%+v", key, err)
		return soap.ErrorCodeInternal.Wrapf(err, "fail to invoke key:%s err:%s", key, err.Error())
	}
	if m.Return != soap.ReturnVoid {
		return soap.ErrorCodeInternal.Errorf("non void method not implemented key:%s", key)
	}
	header := c.Response().Header()
	header.Set(echo.HeaderContentType, echo.MIMETextXMLCharsetUTF8)
	header.Set(echo.HeaderContentLength, "0")
	c.Response().WriteHeader(http.StatusOK)
	return nil
}

func (s *Server) closeArgument(arg interface{}) {
	if closer, ok := arg.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.l.Debugf("fail to Close argument err:%+v", err)
		}
	}
}

type DispatchEvent struct {
	Path    string      `json:"path"`
	Method  string      `json:"method"`
	Code    errors.Code `json:"code"`
	Elapsed int64       `json:"elapsed"`
}

func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		begin := time.Now()
		err := next(c)
		ev := DispatchEvent{
			Path:    c.Request().URL.Path,
			Method:  strings.Trim(c.Request().Header.Get(HeaderSOAPAction), `"`),
			Code:    errors.Success,
			Elapsed: time.Since(begin).Milliseconds(),
		}
		if err != nil {
			ev.Code = errors.CodeOf(err)
		}
		s.notifyMonitors(ev)
		return err
	}
}

func (s *Server) RegisterDocHandler() {
	s.e.GET(UrlDoc, func(c echo.Context) error {
		return c.JSON(http.StatusOK, NewOpenAPISpec(s.r.MethodSpecs()))
	})
}

func (s *Server) wsID(conn *websocket.Conn) string {
	return conn.RemoteAddr().String()
}

func (s *Server) wsConnect(c echo.Context) (*websocket.Conn, error) {
	conn, err := s.u.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.l.Debugf("fail to Upgrade err:%+v", err)
		return nil, err
	}
	s.l.Debugf("[%s]wsConnect", s.wsID(conn))
	return conn, nil
}

func (s *Server) wsClose(conn *websocket.Conn) {
	s.l.Debugf("[%s]wsClose", s.wsID(conn))
	conn.Close()
}

func (s *Server) wsWrite(conn *websocket.Conn, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.l.Logf(s.lv, "[%s]wsWrite=%s", s.wsID(conn), b)
	return conn.WriteMessage(websocket.TextMessage, b)
}

func (s *Server) wsReadLoop(ctx context.Context, conn *websocket.Conn, cb func(b []byte) error) error {
	id := s.wsID(conn)
	ech := make(chan error, 1)
	go func() {
		defer func() {
			s.l.Debugf("[%s]wsReadLoop finish", id)
		}()
		for {
			_, b, err := conn.ReadMessage()
			if err != nil {
				ech <- err
				break
			}
			s.l.Logf(s.lv, "[%s]wsReadLoop=%s", id, b)
			if err = cb(b); err != nil {
				ech <- err
				break
			}
		}
	}()

	select {
	case <-ctx.Done():
		s.l.Debugf("[%s]wsReadLoop context Done", id)
		return ctx.Err()
	case err := <-ech:
		s.l.Debugf("[%s]wsReadLoop err:%+v", id, err)
		return err
	}
}

func (s *Server) addMonitor(conn *websocket.Conn) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.monitors[conn] = struct{}{}
}

func (s *Server) removeMonitor(conn *websocket.Conn) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.monitors, conn)
}

func (s *Server) notifyMonitors(ev DispatchEvent) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	for conn := range s.monitors {
		if err := s.wsWrite(conn, ev); err != nil {
			s.l.Debugf("[%s]fail to wsWrite err:%+v", s.wsID(conn), err)
			delete(s.monitors, conn)
			conn.Close()
		}
	}
}

// RegisterMonitorHandler exposes the dispatch event stream over websocket,
// one JSON DispatchEvent per handled request.
func (s *Server) RegisterMonitorHandler() {
	s.e.GET(UrlMonitor, func(c echo.Context) error {
		conn, err := s.wsConnect(c)
		if err != nil {
			return err
		}
		defer s.wsClose(conn)
		s.addMonitor(conn)
		defer s.removeMonitor(conn)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		_ = s.wsReadLoop(ctx, conn, func(b []byte) error {
			return nil
		})
		return nil
	})
}
