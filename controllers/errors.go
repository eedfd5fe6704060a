package controllers

import "errors"

var errNoRowsUpdated = errors.New("no rows were updated")
