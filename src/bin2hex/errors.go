package bin2hex

import "errors"

var ErrOutputExists = errors.New("output file already exists")
var ErrSameFile = errors.New("input and output are the same file")
var ErrNotEnoughSpace = errors.New("not enough free disk space")
