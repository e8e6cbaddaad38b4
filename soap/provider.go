/*
 * Copyright 2025 SOAPKit Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package soap

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/icon-project/btp2/common/errors"
	"github.com/icon-project/btp2/common/log"
)

// InstanceProvider returns an instance of the declaring type on which to
// invoke a resolved method. Lifecycle and caching of instances is entirely
// the provider's responsibility.
type InstanceProvider interface {
	Instance(interfaceName string) (interface{}, error)
}

type InstanceProviderFunc func(interfaceName string) (interface{}, error)

func (f InstanceProviderFunc) Instance(interfaceName string) (interface{}, error) {
	return f(interfaceName)
}

const DefaultInstanceCacheSize = 128

// CachedInstanceProvider keeps instances resolved by the wrapped provider in
// an LRU cache keyed by interface name.
type CachedInstanceProvider struct {
	p InstanceProvider
	c *lru.Cache
	l log.Logger
}

func NewCachedInstanceProvider(p InstanceProvider, size int, l log.Logger) (*CachedInstanceProvider, error) {
	if size <= 0 {
		size = DefaultInstanceCacheSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrapf(err, "fail to lru.New err:%s", err.Error())
	}
	return &CachedInstanceProvider{
		p: p,
		c: c,
		l: Logger(l),
	}, nil
}

func (p *CachedInstanceProvider) Instance(interfaceName string) (interface{}, error) {
	if v, ok := p.c.Get(interfaceName); ok {
		return v, nil
	}
	v, err := p.p.Instance(interfaceName)
	if err != nil {
		return nil, err
	}
	p.c.Add(interfaceName, v)
	p.l.Debugf("cache instance interface:%s", interfaceName)
	return v, nil
}
