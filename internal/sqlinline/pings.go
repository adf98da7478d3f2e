package sqlinline

const QSelectPing = `--sql 1c9f0d3a-5b7e-4c21-9e4a-2f8b6d170c44
select count from _pings limit 1;
`

const QInsertPing = `--sql 7e2a4f90-13dd-4b6a-8c55-90af3be12d78
insert into _pings(count) values (1);
`
