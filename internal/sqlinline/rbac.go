package sqlinline

const QSelectUserRolesPermissions = `--sql b4e81f26-0d93-4a57-86c2-49e7a0d5b318
select r.id, r.name, r.description, p.id, p.name, p.description
from user_roles ur
join roles r on r.id = ur.role_id
join role_permissions rp on rp.role_id = r.id
join permissions p on p.id = rp.permission_id
where ur.user_id = $1::uuid;
`
