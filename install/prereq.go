package install

import (
	"fmt"
	"os"

	"github.com/agoraforum/agora/utils"
)

// PrereqError is one failed environment precondition.
type PrereqError struct {
	Message string
	Detail  string
}

// PrereqCheck is a registered environment check, nil result means pass.
type PrereqCheck struct {
	Name string
	Run  func() *PrereqError
}

// PrereqChecker runs all registered checks before installation mutates
// anything.
type PrereqChecker struct {
	checks []*PrereqCheck
	errs   []*PrereqError
}

// NewPrereqChecker registers the default environment checks.
func NewPrereqChecker(basePath string, publicPath string, assetPath string) *PrereqChecker {
	ret := new(PrereqChecker)
	ret.Register(&PrereqCheck{
		Name: "base path writable",
		Run:  func() *PrereqError { return checkWritable(basePath) },
	})
	ret.Register(&PrereqCheck{
		Name: "public path writable",
		Run:  func() *PrereqError { return checkWritable(publicPath) },
	})
	ret.Register(&PrereqCheck{
		Name: "bundled assets present",
		Run: func() *PrereqError {
			if !utils.FileExist(assetPath) {
				return &PrereqError{
					Message: "bundled asset directory is missing",
					Detail:  assetPath,
				}
			}
			return nil
		},
	})
	return ret
}

func (c *PrereqChecker) Register(check *PrereqCheck) {
	c.checks = append(c.checks, check)
}

// Check runs all checks, returns true when every check passed.
func (c *PrereqChecker) Check() bool {
	c.errs = nil
	for _, v := range c.checks {
		if e := v.Run(); e != nil {
			c.errs = append(c.errs, e)
		}
	}
	return len(c.errs) == 0
}

// Errors returns the failures of the last Check in registration order.
func (c *PrereqChecker) Errors() []*PrereqError {
	return c.errs
}

func checkWritable(dir string) *PrereqError {
	f, err := os.CreateTemp(dir, ".agora-*")
	if err != nil {
		return &PrereqError{
			Message: fmt.Sprintf("%s is not writable", dir),
			Detail:  err.Error(),
		}
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return nil
}
