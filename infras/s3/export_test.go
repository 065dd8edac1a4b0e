package s3

var NewWithClient = newWithClient
